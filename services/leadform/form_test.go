package leadform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
)

func filledForm(t *testing.T, plan string) *Form {
	t.Helper()
	f := NewForm(plan)
	require.NoError(t, f.Edit(models.FieldName, "Sam Streamer"))
	require.NoError(t, f.Edit(models.FieldEmail, "sam@example.com"))
	require.NoError(t, f.Edit(models.FieldTwitchUsername, "SamStreams_01"))
	require.NoError(t, f.Edit(models.FieldCurrentFollowers, "101-500"))
	return f
}

func pngFile() *services.StagedFile {
	return &services.StagedFile{Name: "receipt.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n")}
}

func TestNewForm(t *testing.T) {
	t.Run("Uses the requested plan", func(t *testing.T) {
		f := NewForm("premium")
		assert.Equal(t, PhaseCollecting, f.Phase)
		assert.Equal(t, models.PlanPremium, f.Data.Plan)
		assert.Empty(t, f.Data.Goals)
		assert.True(t, f.Errors.Empty())
	})

	t.Run("Falls back to growth", func(t *testing.T) {
		assert.Equal(t, models.PlanGrowth, NewForm("").Data.Plan)
		assert.Equal(t, models.PlanGrowth, NewForm("enterprise").Data.Plan)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("Empty required fields block advancing", func(t *testing.T) {
		f := NewForm("growth")
		err := f.Advance()
		assert.ErrorIs(t, err, ErrInvalidFields)
		assert.Equal(t, PhaseCollecting, f.Phase)
		for _, field := range []string{models.FieldName, models.FieldEmail, models.FieldTwitchUsername, models.FieldCurrentFollowers} {
			assert.True(t, f.Errors.Has(field), field)
		}
		assert.False(t, f.Errors.Has(models.FieldMessage))
	})

	t.Run("Any single missing field blocks advancing", func(t *testing.T) {
		for _, field := range []string{models.FieldName, models.FieldEmail, models.FieldTwitchUsername, models.FieldCurrentFollowers} {
			f := filledForm(t, "growth")
			require.NoError(t, f.Edit(field, ""))
			assert.ErrorIs(t, f.Advance(), ErrInvalidFields, field)
			assert.Equal(t, PhaseCollecting, f.Phase)
			assert.Len(t, f.Errors, 1)
		}
	})

	t.Run("Valid fields move to payment", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		assert.Equal(t, PhasePaying, f.Phase)
		assert.True(t, f.Errors.Empty())
	})

	t.Run("Only allowed while collecting", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		assert.ErrorIs(t, f.Advance(), ErrNotCollecting)
	})
}

func TestEdit(t *testing.T) {
	t.Run("Clears only the edited field error", func(t *testing.T) {
		f := NewForm("growth")
		require.NoError(t, f.Edit(models.FieldEmail, "foo@bar"))
		require.ErrorIs(t, f.Advance(), ErrInvalidFields)
		require.Len(t, f.Errors, 4)

		require.NoError(t, f.Edit(models.FieldEmail, "foo@bar.com"))
		assert.False(t, f.Errors.Has(models.FieldEmail))
		assert.True(t, f.Errors.Has(models.FieldName))
		assert.True(t, f.Errors.Has(models.FieldTwitchUsername))
		assert.True(t, f.Errors.Has(models.FieldCurrentFollowers))
	})

	t.Run("Editing does not revalidate", func(t *testing.T) {
		f := NewForm("growth")
		require.NoError(t, f.Edit(models.FieldTwitchUsername, "abc"))
		assert.True(t, f.Errors.Empty())
	})

	t.Run("Unknown field", func(t *testing.T) {
		f := NewForm("growth")
		assert.ErrorIs(t, f.Edit("phone", "123"), ErrUnknownField)
	})

	t.Run("Invalid plan leaves state unchanged", func(t *testing.T) {
		f := NewForm("basic")
		assert.ErrorIs(t, f.Edit(models.FieldPlan, "gold"), ErrInvalidPlan)
		assert.Equal(t, models.PlanBasic, f.Data.Plan)

		require.NoError(t, f.Edit(models.FieldPlan, "premium"))
		assert.Equal(t, models.PlanPremium, f.Data.Plan)
	})

	t.Run("Rejected after payment starts", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		assert.ErrorIs(t, f.Edit(models.FieldName, "Other"), ErrNotCollecting)
		assert.Equal(t, "Sam Streamer", f.Data.Name)
	})
}

func TestToggleGoal(t *testing.T) {
	t.Run("Adds and removes", func(t *testing.T) {
		f := NewForm("growth")
		require.NoError(t, f.ToggleGoal("Grow follower count"))
		require.NoError(t, f.ToggleGoal("Monetize my stream"))
		assert.Equal(t, []string{"Grow follower count", "Monetize my stream"}, f.Data.Goals)

		require.NoError(t, f.ToggleGoal("Grow follower count"))
		assert.Equal(t, []string{"Monetize my stream"}, f.Data.Goals)
	})

	t.Run("Basic plan does not offer higher tier goals", func(t *testing.T) {
		f := NewForm("basic")
		assert.ErrorIs(t, f.ToggleGoal("Monetize my stream"), ErrGoalNotOffered)
		assert.ErrorIs(t, f.ToggleGoal("Become Twitch Partner"), ErrGoalNotOffered)
		assert.NoError(t, f.ToggleGoal("Reach Twitch Affiliate"))
	})

	t.Run("Premium plan offers every goal", func(t *testing.T) {
		f := NewForm("premium")
		for _, g := range models.GoalCatalog {
			assert.NoError(t, f.ToggleGoal(g.Label))
		}
		assert.Len(t, f.Data.Goals, len(models.GoalCatalog))
	})

	t.Run("Downgrade keeps hidden selections", func(t *testing.T) {
		f := NewForm("premium")
		require.NoError(t, f.ToggleGoal("Become Twitch Partner"))
		require.NoError(t, f.Edit(models.FieldPlan, "basic"))
		assert.Equal(t, []string{"Become Twitch Partner"}, f.Data.Goals)

		// still removable, but not re-addable
		require.NoError(t, f.ToggleGoal("Become Twitch Partner"))
		assert.Empty(t, f.Data.Goals)
		assert.ErrorIs(t, f.ToggleGoal("Become Twitch Partner"), ErrGoalNotOffered)
	})

	t.Run("Unknown goal", func(t *testing.T) {
		assert.ErrorIs(t, NewForm("premium").ToggleGoal("Go viral"), ErrUnknownGoal)
	})
}

func TestFinalize(t *testing.T) {
	t.Run("Requests an upload when no url is cached", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		file := pngFile()
		require.NoError(t, f.SelectFile(file))

		cmd, err := f.Finalize()
		require.NoError(t, err)
		assert.Equal(t, CommandUpload, cmd.Kind)
		assert.Same(t, file, cmd.File)
		assert.Equal(t, PhaseSubmitting, f.Phase)
	})

	t.Run("Ignored while submitting or submitted", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		_, err := f.Finalize()
		require.NoError(t, err)

		cmd, err := f.Finalize()
		assert.NoError(t, err)
		assert.Equal(t, CommandNone, cmd.Kind)

		f.Phase = PhaseSubmitted
		cmd, err = f.Finalize()
		assert.NoError(t, err)
		assert.Equal(t, CommandNone, cmd.Kind)
	})

	t.Run("Not allowed while collecting", func(t *testing.T) {
		_, err := filledForm(t, "growth").Finalize()
		assert.ErrorIs(t, err, ErrNotPaying)
	})

	t.Run("No file selected blocks with a visible error", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		cmd, err := f.Finalize()
		require.NoError(t, err)
		require.Equal(t, CommandUpload, cmd.Kind)
		assert.Nil(t, cmd.File)

		next := f.UploadCompleted(nil, services.ErrNoFileSelected)
		assert.Equal(t, CommandNone, next.Kind)
		assert.Equal(t, PhasePaying, f.Phase)
		assert.Equal(t, services.ErrNoFileSelected.Error(), f.GeneralError)
		assert.Empty(t, f.Data.AttachmentURL)
	})

	t.Run("Upload failure surfaces the message", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		require.NoError(t, f.SelectFile(pngFile()))
		f.Finalize()

		f.UploadCompleted(nil, errors.New("Upload preset not found"))
		assert.Equal(t, PhasePaying, f.Phase)
		assert.Contains(t, f.GeneralError, "Upload preset not found")
	})

	t.Run("Upload success leads to submit with the url", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		require.NoError(t, f.SelectFile(pngFile()))
		f.Finalize()

		cmd := f.UploadCompleted(&services.AttachmentResult{FileName: "receipt.png", URL: "https://cdn.example.com/x.png"}, nil)
		require.Equal(t, CommandSubmit, cmd.Kind)
		assert.Equal(t, "https://cdn.example.com/x.png", cmd.Data.AttachmentURL)
		assert.Equal(t, "Sam Streamer", cmd.Data.Name)
		assert.Equal(t, PhaseSubmitting, f.Phase)
	})

	t.Run("Submission failure keeps data and url for a retry", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		require.NoError(t, f.SelectFile(pngFile()))
		f.Finalize()
		first := f.UploadCompleted(&services.AttachmentResult{URL: "https://cdn.example.com/x.png"}, nil)

		f.SubmissionCompleted(errors.New("status 500"))
		assert.Equal(t, PhasePaying, f.Phase)
		assert.Equal(t, MsgSubmissionFailed, f.GeneralError)

		retry, err := f.Finalize()
		require.NoError(t, err)
		assert.Equal(t, CommandSubmit, retry.Kind)
		assert.Equal(t, first.Data, retry.Data)
	})

	t.Run("Success schedules the close", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		require.NoError(t, f.SelectFile(pngFile()))
		f.Finalize()
		f.UploadCompleted(&services.AttachmentResult{URL: "https://cdn.example.com/x.png"}, nil)

		cmd := f.SubmissionCompleted(nil)
		assert.Equal(t, CommandScheduleClose, cmd.Kind)
		assert.Equal(t, PhaseSubmitted, f.Phase)
	})

	t.Run("Selecting a new file drops the cached url", func(t *testing.T) {
		f := filledForm(t, "growth")
		require.NoError(t, f.Advance())
		require.NoError(t, f.SelectFile(pngFile()))
		f.Finalize()
		f.UploadCompleted(&services.AttachmentResult{URL: "https://cdn.example.com/x.png"}, nil)
		f.SubmissionCompleted(errors.New("status 500"))

		require.NoError(t, f.SelectFile(pngFile()))
		assert.Empty(t, f.Data.AttachmentURL)
		assert.Empty(t, f.GeneralError)

		cmd, err := f.Finalize()
		require.NoError(t, err)
		assert.Equal(t, CommandUpload, cmd.Kind)
	})

	t.Run("Late completions are ignored", func(t *testing.T) {
		f := filledForm(t, "growth")
		assert.Equal(t, CommandNone, f.UploadCompleted(&services.AttachmentResult{URL: "u"}, nil).Kind)
		assert.Equal(t, CommandNone, f.SubmissionCompleted(nil).Kind)
		assert.Equal(t, PhaseCollecting, f.Phase)
	})
}

func TestSelectFile(t *testing.T) {
	t.Run("Only while payment is due", func(t *testing.T) {
		f := filledForm(t, "growth")
		assert.ErrorIs(t, f.SelectFile(pngFile()), ErrNotPaying)
		assert.Nil(t, f.File)

		require.NoError(t, f.Advance())
		require.NoError(t, f.SelectFile(pngFile()))
		assert.NotNil(t, f.File)
	})
}
