package models

// Goal is a selectable aspiration in the lead form, gated by the minimum tier that offers it
type Goal struct {
	Label string
	Tier  Plan
}

// GoalCatalog is the fixed list of goals in display order
var GoalCatalog = []Goal{
	{Label: "Reach Twitch Affiliate", Tier: PlanBasic},
	{Label: "Grow follower count", Tier: PlanBasic},
	{Label: "Increase concurrent viewers", Tier: PlanGrowth},
	{Label: "Build community engagement", Tier: PlanGrowth},
	{Label: "Monetize my stream", Tier: PlanGrowth},
	{Label: "Become Twitch Partner", Tier: PlanPremium},
}

// VisibleTo reports whether the goal is offered under the given plan.
// Premium sees every goal, growth everything but premium goals, basic only basic goals.
func (g Goal) VisibleTo(plan Plan) bool {
	return plan.rank() >= g.Tier.rank() && plan.rank() > 0
}

// VisibleGoals returns the catalog entries offered under a plan
func VisibleGoals(plan Plan) []Goal {
	goals := make([]Goal, 0, len(GoalCatalog))
	for _, g := range GoalCatalog {
		if g.VisibleTo(plan) {
			goals = append(goals, g)
		}
	}
	return goals
}

// FindGoal looks up a catalog entry by label
func FindGoal(label string) (Goal, bool) {
	for _, g := range GoalCatalog {
		if g.Label == label {
			return g, true
		}
	}
	return Goal{}, false
}
