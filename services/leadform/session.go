package leadform

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
)

const (
	// DefaultAutoCloseDelay is how long the success message stays before the form closes itself
	DefaultAutoCloseDelay = 3 * time.Second

	// DefaultMaxStagedBytes bounds staged payment confirmations held by a manager
	DefaultMaxStagedBytes = 256 << 20

	// DefaultStagedFileTTL is how long an idle session may keep a staged file
	DefaultStagedFileTTL = 10 * time.Minute

	recordTimeout = 10 * time.Second
)

// Submitter sends a completed form to the backend
type Submitter interface {
	Submit(ctx context.Context, data models.LeadFormData) error
}

// Recorder is told about every finished submission attempt
type Recorder interface {
	RecordAttempt(ctx context.Context, attempt services.LeadAttempt)
}

// Dependencies are the collaborators shared by every session
type Dependencies struct {
	Uploader       services.AttachmentUploader
	Submitter      Submitter
	Recorder       Recorder // optional
	AutoCloseDelay time.Duration
	MaxStagedBytes int64
	StagedFileTTL  time.Duration
	Now            func() time.Time

	// set by NewManager
	budget   *stagedBudget
	inflight *sync.WaitGroup
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dependencies) autoCloseDelay() time.Duration {
	if d.AutoCloseDelay > 0 {
		return d.AutoCloseDelay
	}
	return DefaultAutoCloseDelay
}

func (d *Dependencies) stagedFileTTL() time.Duration {
	if d.StagedFileTTL > 0 {
		return d.StagedFileTTL
	}
	return DefaultStagedFileTTL
}

// Visitor identifies who is filling the form, for lead records
type Visitor struct {
	IPAddress string
	UserAgent string
}

// Session serializes transitions of one visitor's form and runs its side effects.
// Every open and close bumps the generation; results from an older generation are dropped.
type Session struct {
	ID string

	deps *Dependencies

	mu         sync.Mutex
	form       *Form
	generation uint64
	visitor    Visitor
	lastSeen   time.Time
	closeTimer *time.Timer

	inflight sync.WaitGroup
}

// NewSession creates a closed session
func NewSession(id string, deps *Dependencies) *Session {
	return &Session{
		ID:       id,
		deps:     deps,
		lastSeen: deps.now(),
	}
}

// Open discards any previous form and starts a new one
func (s *Session) Open(plan string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.form = NewForm(plan)
	services.LeadFormsOpened.WithLabelValues(string(s.form.Data.Plan)).Inc()
	return s.viewLocked()
}

// Close discards the form from any phase. Pending results for it are ignored.
func (s *Session) Close() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	return s.viewLocked()
}

// Edit sets a field value
func (s *Session) Edit(field, value string) (View, error) {
	return s.update(func(f *Form) error { return f.Edit(field, value) })
}

// ToggleGoal adds or removes a goal
func (s *Session) ToggleGoal(label string) (View, error) {
	return s.update(func(f *Form) error { return f.ToggleGoal(label) })
}

// SelectFile stages the payment confirmation without uploading it. The file counts against
// the manager's staging budget until it is replaced or the form is discarded.
func (s *Session) SelectFile(file *services.StagedFile) (View, error) {
	return s.update(func(f *Form) error {
		if f.Phase != PhasePaying {
			return ErrNotPaying
		}
		if !s.deps.budget.reserve(stagedSize(file) - stagedSize(f.File)) {
			return ErrStagingFull
		}
		return f.SelectFile(file)
	})
}

// Advance moves to payment when every field is valid
func (s *Session) Advance() (View, error) {
	return s.update(func(f *Form) error {
		err := f.Advance()
		if errors.Is(err, ErrInvalidFields) {
			countValidationFailures(f.Errors)
		}
		return err
	})
}

// Finalize starts the upload and submission in the background and returns the submitting view.
// The work is detached from ctx cancellation so a dropped request does not abort it.
func (s *Session) Finalize(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.deps.now()
	if s.form == nil {
		return s.viewLocked(), ErrFormClosed
	}

	cmd, err := s.form.Finalize()
	if errors.Is(err, ErrInvalidFields) {
		countValidationFailures(s.form.Errors)
	}
	if err == nil && cmd.Kind != CommandNone {
		s.dispatchLocked(context.WithoutCancel(ctx), cmd)
	}
	return s.viewLocked(), err
}

// SetVisitor records who is behind the session
func (s *Session) SetVisitor(v Visitor) {
	s.mu.Lock()
	s.visitor = v
	s.mu.Unlock()
}

// Snapshot returns the current view
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.deps.now()
	return s.viewLocked()
}

// LastSeen is the time of the most recent visitor action
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// HoldsFile reports whether a staged payment confirmation is kept in memory
func (s *Session) HoldsFile() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form != nil && s.form.File != nil
}

// Wait blocks until background work started by Finalize has finished
func (s *Session) Wait() {
	s.inflight.Wait()
}

func (s *Session) update(fn func(f *Form) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.deps.now()
	if s.form == nil {
		return s.viewLocked(), ErrFormClosed
	}
	err := fn(s.form)
	return s.viewLocked(), err
}

func (s *Session) resetLocked() {
	s.discardLocked()
	s.lastSeen = s.deps.now()
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
}

// discardLocked drops the form and its staged file, invalidating pending results
func (s *Session) discardLocked() {
	s.generation++
	if s.form != nil {
		s.deps.budget.release(stagedSize(s.form.File))
	}
	s.form = nil
}

func (s *Session) dispatchLocked(ctx context.Context, cmd Command) {
	gen := s.generation
	visitor := s.visitor
	s.inflight.Add(1)
	if s.deps.inflight != nil {
		s.deps.inflight.Add(1)
	}
	go func() {
		defer func() {
			if s.deps.inflight != nil {
				s.deps.inflight.Done()
			}
			s.inflight.Done()
		}()
		s.run(ctx, gen, visitor, cmd)
	}()
}

// run executes commands until the form stops asking for more. The lock is never held during I/O.
// The submission attempt is recorded after its outcome is applied, under its own deadline.
func (s *Session) run(ctx context.Context, gen uint64, visitor Visitor, cmd Command) {
	start := time.Now()
	var attempt *services.LeadAttempt
	defer func() {
		if attempt != nil {
			s.record(ctx, *attempt)
		}
	}()

	for {
		switch cmd.Kind {
		case CommandUpload:
			result, err := s.upload(ctx, cmd.File)
			cmd = s.apply(gen, func(f *Form) Command { return f.UploadCompleted(result, err) })

		case CommandSubmit:
			err := s.deps.Submitter.Submit(ctx, cmd.Data)
			countSubmission(s.ID, cmd.Data, err, start)
			attempt = &services.LeadAttempt{
				SessionID: s.ID,
				Data:      cmd.Data,
				Err:       err,
				IPAddress: visitor.IPAddress,
				UserAgent: visitor.UserAgent,
			}
			cmd = s.apply(gen, func(f *Form) Command { return f.SubmissionCompleted(err) })

		case CommandScheduleClose:
			s.scheduleClose(gen)
			return

		default:
			return
		}
	}
}

func (s *Session) upload(ctx context.Context, file *services.StagedFile) (*services.AttachmentResult, error) {
	if file == nil {
		services.LeadUploads.WithLabelValues(services.OutcomeFailure).Inc()
		return nil, services.ErrNoFileSelected
	}
	if s.deps.Uploader == nil {
		services.LeadUploads.WithLabelValues(services.OutcomeFailure).Inc()
		return nil, errors.New("no upload provider configured")
	}

	result, err := s.deps.Uploader.UploadAttachment(ctx, file)
	if err != nil {
		log.Printf("[WARNING] Session %s: payment confirmation upload failed: %v", s.ID, err)
		services.LeadUploads.WithLabelValues(services.OutcomeFailure).Inc()
		return nil, err
	}
	services.LeadUploads.WithLabelValues(services.OutcomeSuccess).Inc()
	return result, nil
}

func countSubmission(sessionID string, data models.LeadFormData, err error, start time.Time) {
	outcome := services.OutcomeSuccess
	if err != nil {
		outcome = services.OutcomeFailure
		log.Printf("[WARNING] Session %s: lead submission failed: %v", sessionID, err)
	}
	services.LeadSubmissions.WithLabelValues(string(data.Plan), outcome).Inc()
	services.LeadSubmissionDuration.Observe(time.Since(start).Seconds())
}

func (s *Session) record(ctx context.Context, attempt services.LeadAttempt) {
	if s.deps.Recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	s.deps.Recorder.RecordAttempt(ctx, attempt)
}

// apply runs a completion against the form if it still belongs to generation gen
func (s *Session) apply(gen uint64, fn func(f *Form) Command) Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen || s.form == nil {
		log.Printf("[INFO] Session %s: dropping result for a form that was closed", s.ID)
		return Command{}
	}
	return fn(s.form)
}

func (s *Session) scheduleClose(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen || s.form == nil {
		return
	}
	s.closeTimer = time.AfterFunc(s.deps.autoCloseDelay(), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == gen && s.form != nil && s.form.Phase == PhaseSubmitted {
			s.discardLocked()
			s.closeTimer = nil
		}
	})
}

func countValidationFailures(errs services.ValidationErrors) {
	for field := range errs {
		services.LeadValidationFailures.WithLabelValues(field).Inc()
	}
}
