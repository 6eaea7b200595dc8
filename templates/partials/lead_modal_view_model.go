package partials

import (
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services/leadform"
)

// LeadModalViewModel is everything the lead form modal needs to render one phase
type LeadModalViewModel struct {
	View             leadform.View
	CSRFToken        string
	TurnstileSiteKey string
	// Notice is a one-off message for a rejected action, shown above the form
	Notice string
}

// NewLeadModalViewModel builds the view model for a session snapshot
func NewLeadModalViewModel(view leadform.View, csrfToken, turnstileSiteKey string) LeadModalViewModel {
	return LeadModalViewModel{
		View:             view,
		CSRFToken:        csrfToken,
		TurnstileSiteKey: turnstileSiteKey,
	}
}

// Polling reports whether the modal should refresh itself to observe background progress
func (vm LeadModalViewModel) Polling() bool {
	return vm.View.Open && (vm.View.Phase == leadform.PhaseSubmitting || vm.View.Phase == leadform.PhaseSubmitted)
}

// FollowerRanges are the options of the current followers select
func (vm LeadModalViewModel) FollowerRanges() []models.FollowerRange {
	return models.FollowerRanges
}

// PlanTiers are the options of the plan select
func (vm LeadModalViewModel) PlanTiers() []models.PlanTier {
	return models.PlanTiers
}

// PaymentMethods are shown on the payment step
func (vm LeadModalViewModel) PaymentMethods() []models.PaymentMethod {
	return models.PaymentMethods
}

// Error returns the validation message for a field
func (vm LeadModalViewModel) Error(field string) string {
	return vm.View.Errors.Get(field)
}
