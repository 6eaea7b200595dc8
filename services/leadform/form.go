// Package leadform holds the lead form state machine and the per-visitor sessions that drive it.
package leadform

import (
	"errors"
	"fmt"
	"strings"

	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
)

// Phase is the step of an open form
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhasePaying     Phase = "paying"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

var (
	ErrFormClosed     = errors.New("the form is not open")
	ErrNotCollecting  = errors.New("fields can only be changed before payment")
	ErrNotPaying      = errors.New("the form is not waiting for payment")
	ErrUnknownField   = errors.New("unknown form field")
	ErrInvalidPlan    = errors.New("invalid plan")
	ErrUnknownGoal    = errors.New("unknown goal")
	ErrGoalNotOffered = errors.New("goal not offered for the selected plan")
	ErrInvalidFields  = errors.New("some fields need attention")
	ErrStagingFull    = errors.New("too many uploads are waiting right now, please try again in a few minutes")
)

// User-facing general errors
const (
	MsgFixFields        = "Please fix the highlighted fields before submitting."
	MsgSubmissionFailed = "We could not send your application. Please try again."
)

// CommandKind identifies a side effect the form asks its owner to perform
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandUpload
	CommandSubmit
	CommandScheduleClose
)

func (k CommandKind) String() string {
	switch k {
	case CommandUpload:
		return "upload"
	case CommandSubmit:
		return "submit"
	case CommandScheduleClose:
		return "schedule-close"
	}
	return "none"
}

// Command is a one-shot instruction returned by a transition. It is consumed once by the caller.
type Command struct {
	Kind CommandKind
	File *services.StagedFile // CommandUpload; nil when nothing was selected
	Data models.LeadFormData  // CommandSubmit
}

// Form is an open lead form. A closed form is represented by the absence of a Form.
type Form struct {
	Phase        Phase
	Data         models.LeadFormData
	Errors       services.ValidationErrors
	GeneralError string
	File         *services.StagedFile
}

// NewForm opens a fresh form with the plan preselected (growth when the value is unknown)
func NewForm(plan string) *Form {
	return &Form{
		Phase:  PhaseCollecting,
		Data:   models.NewLeadFormData(models.ParsePlan(plan)),
		Errors: services.ValidationErrors{},
	}
}

// Edit updates a single field and clears only that field's error
func (f *Form) Edit(field, value string) error {
	if f.Phase != PhaseCollecting {
		return ErrNotCollecting
	}

	switch field {
	case models.FieldName:
		f.Data.Name = value
	case models.FieldEmail:
		f.Data.Email = value
	case models.FieldTwitchUsername:
		f.Data.TwitchUsername = value
	case models.FieldCurrentFollowers:
		f.Data.CurrentFollowers = value
	case models.FieldMessage:
		f.Data.Message = value
	case models.FieldPlan:
		if !models.IsValidPlan(value) {
			return fmt.Errorf("%w: %q", ErrInvalidPlan, value)
		}
		f.Data.Plan = models.Plan(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	f.Errors.Clear(field)
	return nil
}

// ToggleGoal removes a selected goal or adds one that the current plan offers
func (f *Form) ToggleGoal(label string) error {
	if f.Phase != PhaseCollecting {
		return ErrNotCollecting
	}

	goal, ok := models.FindGoal(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGoal, label)
	}

	for i, g := range f.Data.Goals {
		if g == label {
			f.Data.Goals = append(f.Data.Goals[:i:i], f.Data.Goals[i+1:]...)
			return nil
		}
	}

	if !goal.VisibleTo(f.Data.Plan) {
		return fmt.Errorf("%w: %q", ErrGoalNotOffered, label)
	}
	f.Data.Goals = append(f.Data.Goals, label)
	return nil
}

// SelectFile stages a payment confirmation. Any previously uploaded URL is discarded.
func (f *Form) SelectFile(file *services.StagedFile) error {
	if f.Phase != PhasePaying {
		return ErrNotPaying
	}
	f.File = file
	f.Data.AttachmentURL = ""
	f.GeneralError = ""
	return nil
}

// Advance validates every field and moves to payment when nothing fails
func (f *Form) Advance() error {
	if f.Phase != PhaseCollecting {
		return ErrNotCollecting
	}
	f.Errors = services.ValidateLead(f.Data)
	if !f.Errors.Empty() {
		return ErrInvalidFields
	}
	f.GeneralError = ""
	f.Phase = PhasePaying
	return nil
}

// Finalize starts the final submission. While a submission is running or done it does nothing.
func (f *Form) Finalize() (Command, error) {
	switch f.Phase {
	case PhaseSubmitting, PhaseSubmitted:
		return Command{}, nil
	case PhasePaying:
	default:
		return Command{}, ErrNotPaying
	}

	f.Errors = services.ValidateLead(f.Data)
	if !f.Errors.Empty() {
		f.GeneralError = MsgFixFields
		return Command{}, ErrInvalidFields
	}

	f.GeneralError = ""
	f.Phase = PhaseSubmitting
	if f.Data.AttachmentURL == "" {
		return Command{Kind: CommandUpload, File: f.File}, nil
	}
	return f.submitCommand(), nil
}

// UploadCompleted resumes a suspended submission with the upload outcome
func (f *Form) UploadCompleted(result *services.AttachmentResult, err error) Command {
	if f.Phase != PhaseSubmitting || f.Data.AttachmentURL != "" {
		return Command{}
	}

	if err == nil && (result == nil || result.URL == "") {
		err = errors.New("upload returned no url")
	}
	if err != nil {
		f.Phase = PhasePaying
		f.GeneralError = uploadErrorMessage(err)
		return Command{}
	}

	f.Data.AttachmentURL = result.URL
	return f.submitCommand()
}

// SubmissionCompleted applies the backend outcome
func (f *Form) SubmissionCompleted(err error) Command {
	if f.Phase != PhaseSubmitting || f.Data.AttachmentURL == "" {
		return Command{}
	}

	if err != nil {
		f.Phase = PhasePaying
		f.GeneralError = MsgSubmissionFailed
		return Command{}
	}

	f.Phase = PhaseSubmitted
	return Command{Kind: CommandScheduleClose}
}

func (f *Form) submitCommand() Command {
	return Command{Kind: CommandSubmit, Data: f.Data.Clone()}
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, services.ErrNoFileSelected) {
		return services.ErrNoFileSelected.Error()
	}
	msg := strings.TrimSpace(err.Error())
	return "File upload failed: " + msg + ". Please try again."
}
