package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVals(t *testing.T) {
	assert.Equal(t, `{"plan":"growth"}`, Vals("plan", "growth"))
	assert.Equal(t, `{"goal":"Reach \"Affiliate\""}`, Vals("goal", `Reach "Affiliate"`))
}

func TestJSON(t *testing.T) {
	assert.Equal(t, `{"field":"email"}`, JSON(map[string]string{"field": "email"}))
	assert.Equal(t, "{}", JSON(func() {}))
}
