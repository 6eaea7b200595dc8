package models

// Plan is one of the purchasable service tiers
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanGrowth  Plan = "growth"
	PlanPremium Plan = "premium"
)

// DefaultPlan is preselected when the form opens without a valid plan
const DefaultPlan = PlanGrowth

// PlanTier holds the display data for a tier on the pricing section and order summary
type PlanTier struct {
	ID          Plan
	Name        string
	Price       string // Headline price on the pricing card
	PriceRange  string // Range shown in the form and order summary
	Description string
	Features    []string
	Highlight   bool
}

// PlanTiers lists the tiers in display order
var PlanTiers = []PlanTier{
	{
		ID:          PlanBasic,
		Name:        "Basic Tier",
		Price:       "$200",
		PriceRange:  "$100-$200",
		Description: "Perfect for streamers starting their journey",
		Features: []string{
			"Meta ad launch setup with budget",
			"Stream optimization guidance",
			"Twitch Affiliate status guidance",
			"Basic monetization setup",
			"Email support",
		},
	},
	{
		ID:          PlanGrowth,
		Name:        "Growth Tier",
		Price:       "$500",
		PriceRange:  "$300-$500",
		Description: "Most popular choice for serious streamers",
		Features: []string{
			"Everything in Basic Tier",
			"Full ad campaign management",
			"Stream branding & overlays",
			"Content strategy planning",
			"Community building guidance",
			"Priority support",
		},
		Highlight: true,
	},
	{
		ID:          PlanPremium,
		Name:        "Premium Tier",
		Price:       "$800+",
		PriceRange:  "$600-$800+",
		Description: "Complete solution for professional streamers",
		Features: []string{
			"All Growth Tier features",
			"Ongoing campaign support",
			"Personal growth coaching",
			"Advanced monetization strategies",
			"Networking opportunities",
			"24/7 dedicated support",
		},
	},
}

// IsValidPlan checks if the plan is one of the known tiers
func IsValidPlan(plan string) bool {
	for _, tier := range PlanTiers {
		if string(tier.ID) == plan {
			return true
		}
	}
	return false
}

// ParsePlan returns the plan for a raw value, or DefaultPlan when the value is unknown
func ParsePlan(raw string) Plan {
	if IsValidPlan(raw) {
		return Plan(raw)
	}
	return DefaultPlan
}

// TierFor returns the display data for a plan
func TierFor(plan Plan) (PlanTier, bool) {
	for _, tier := range PlanTiers {
		if tier.ID == plan {
			return tier, true
		}
	}
	return PlanTier{}, false
}

// rank orders tiers so that a higher tier sees everything below it
func (p Plan) rank() int {
	switch p {
	case PlanBasic:
		return 1
	case PlanGrowth:
		return 2
	case PlanPremium:
		return 3
	}
	return 0
}
