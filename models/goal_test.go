package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(goals []Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.Label)
	}
	return out
}

func TestVisibleGoals(t *testing.T) {
	t.Run("Basic hides growth and premium goals", func(t *testing.T) {
		got := labels(VisibleGoals(PlanBasic))
		assert.Equal(t, []string{"Reach Twitch Affiliate", "Grow follower count"}, got)
	})

	t.Run("Growth hides only premium goals", func(t *testing.T) {
		got := labels(VisibleGoals(PlanGrowth))
		assert.Len(t, got, 5)
		assert.NotContains(t, got, "Become Twitch Partner")
	})

	t.Run("Premium offers every goal", func(t *testing.T) {
		assert.Equal(t, labels(GoalCatalog), labels(VisibleGoals(PlanPremium)))
	})

	t.Run("Unknown plan offers nothing", func(t *testing.T) {
		assert.Empty(t, VisibleGoals(Plan("enterprise")))
	})
}

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanBasic, ParsePlan("basic"))
	assert.Equal(t, PlanPremium, ParsePlan("premium"))
	assert.Equal(t, PlanGrowth, ParsePlan(""))
	assert.Equal(t, PlanGrowth, ParsePlan("Basic"))

	tier, ok := TierFor(PlanGrowth)
	require.True(t, ok)
	assert.Equal(t, "$300-$500", tier.PriceRange)
	assert.True(t, tier.Highlight)
}

func TestLeadSubmissionJSON(t *testing.T) {
	data := NewLeadFormData(PlanBasic)
	data.Name = "Jo"
	data.AttachmentURL = "https://res.example.com/p.png"

	body, err := json.Marshal(NewLeadSubmission(data))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "Twitch", decoded["sheetName"])
	assert.Equal(t, "https://res.example.com/p.png", decoded["url"])
	assert.Equal(t, "basic", decoded["plan"])
	assert.Equal(t, []interface{}{}, decoded["goals"])
	for _, key := range []string{"name", "email", "twitchUsername", "currentFollowers", "message"} {
		assert.Contains(t, decoded, key)
	}
}

func TestLeadSubmissionNilGoals(t *testing.T) {
	body, err := json.Marshal(NewLeadSubmission(LeadFormData{}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"goals":[]`)
}

func TestSuccessStoryGrowthMultiple(t *testing.T) {
	assert.Equal(t, 189, SuccessStories[0].GrowthMultiple())
	assert.Equal(t, 0, SuccessStory{AfterFollowers: 10}.GrowthMultiple())
}
