package pages

import (
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/templates/partials"
)

// LandingViewModel holds the inline content and the visitor's current form state
type LandingViewModel struct {
	Title            string
	CSRFToken        string
	TurnstileSiteKey string
	Tiers            []models.PlanTier
	Roadmap          []models.RoadmapStep
	Metrics          []models.ProofMetric
	Stories          []models.SuccessStory
	Modal            partials.LeadModalViewModel
}

// NewLandingViewModel fills the page with the static catalog data
func NewLandingViewModel(title string, modal partials.LeadModalViewModel) LandingViewModel {
	return LandingViewModel{
		Title:            title,
		CSRFToken:        modal.CSRFToken,
		TurnstileSiteKey: modal.TurnstileSiteKey,
		Tiers:            models.PlanTiers,
		Roadmap:          models.RoadmapSteps,
		Metrics:          models.ProofMetrics,
		Stories:          featuredStories(models.SuccessStories, 3),
		Modal:            modal,
	}
}

// featuredStories returns the first n stories for the testimonial strip
func featuredStories(stories []models.SuccessStory, n int) []models.SuccessStory {
	if len(stories) < n {
		return stories
	}
	return stories[:n]
}
