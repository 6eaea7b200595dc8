package leadform

import (
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
)

// GoalOption is a goal as offered in the form
type GoalOption struct {
	Label    string
	Selected bool
}

// View is a read-only copy of the session state for rendering
type View struct {
	Open         bool
	Generation   uint64
	Phase        Phase
	Data         models.LeadFormData
	Errors       services.ValidationErrors
	GeneralError string
	FileName     string
	FileSize     int64
	Goals        []GoalOption
	Tier         models.PlanTier
}

// HasFile reports whether a payment confirmation is staged or already uploaded
func (v View) HasFile() bool {
	return v.FileName != "" || v.Data.AttachmentURL != ""
}

// Busy reports whether background work is still running
func (v View) Busy() bool {
	return v.Open && v.Phase == PhaseSubmitting
}

func (s *Session) viewLocked() View {
	v := View{Generation: s.generation}
	if s.form == nil {
		return v
	}

	f := s.form
	v.Open = true
	v.Phase = f.Phase
	v.Data = f.Data.Clone()
	v.Errors = f.Errors.Clone()
	v.GeneralError = f.GeneralError
	if f.File != nil {
		v.FileName = f.File.Name
		v.FileSize = f.File.Size()
	}
	v.Tier, _ = models.TierFor(f.Data.Plan)

	// Hidden goals that are still selected stay listed so they can be removed
	for _, g := range models.GoalCatalog {
		selected := f.Data.HasGoal(g.Label)
		if g.VisibleTo(f.Data.Plan) || selected {
			v.Goals = append(v.Goals, GoalOption{Label: g.Label, Selected: selected})
		}
	}
	return v
}
