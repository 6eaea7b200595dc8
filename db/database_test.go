package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamgrowth_app_go/config"
)

func TestTursoDSN(t *testing.T) {
	assert.Equal(t, "libsql://leads.turso.io", TursoDSN("libsql://leads.turso.io", ""))
	assert.Equal(t, "libsql://leads.turso.io?authToken=abc", TursoDSN("libsql://leads.turso.io", "abc"))
}

func TestInitializeLocal(t *testing.T) {
	cfg := &config.Config{
		DBPath:      filepath.Join(t.TempDir(), "leads.db"),
		Environment: "test",
	}
	require.NoError(t, Initialize(cfg))
	defer Close()

	type probe struct {
		ID   uint
		Name string
	}
	require.NoError(t, AutoMigrate(&probe{}))
	assert.NoError(t, DB.Create(&probe{Name: "ok"}).Error)
}

func TestAutoMigrateWithoutDB(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()

	err := AutoMigrate()
	assert.Error(t, err)
	assert.NoError(t, Close())
}
