package handlers

import (
	"errors"
	"net/http"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/middleware"
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
	"streamgrowth_app_go/services/leadform"
	"streamgrowth_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// LeadFormsKey is the echo context key holding the *leadform.Manager
const LeadFormsKey = "leadforms"

// editableFields are synced from the posted form before advancing
var editableFields = []string{
	models.FieldName,
	models.FieldEmail,
	models.FieldTwitchUsername,
	models.FieldCurrentFollowers,
	models.FieldPlan,
	models.FieldMessage,
}

func visitorSession(c echo.Context) *leadform.Session {
	manager := c.Get(LeadFormsKey).(*leadform.Manager)
	session := manager.Session(middleware.GetLeadSessionID(c))
	session.SetVisitor(leadform.Visitor{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	return session
}

// renderLead writes the modal for view. A non-nil err becomes an HTTP error for plain
// requests, and a notice inside the re-rendered modal for htmx requests.
func renderLead(c echo.Context, view leadform.View, err error) error {
	cfg := c.Get("config").(*config.Config)
	vm := partials.NewLeadModalViewModel(view, middleware.GetCSRFToken(c), cfg.TurnstileSiteKey)

	if err != nil && !errors.Is(err, leadform.ErrInvalidFields) {
		c.Logger().Warnf("Lead form action rejected: %v", err)
		if !isHTMX(c) {
			return echo.NewHTTPError(leadErrorStatus(err), err.Error())
		}
		vm.Notice = noticeFor(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	if errors.Is(err, leadform.ErrInvalidFields) && !isHTMX(c) {
		c.Response().WriteHeader(http.StatusUnprocessableEntity)
	}
	return render(c, partials.LeadModal(vm))
}

func leadErrorStatus(err error) int {
	switch {
	case errors.Is(err, leadform.ErrFormClosed),
		errors.Is(err, leadform.ErrNotCollecting),
		errors.Is(err, leadform.ErrNotPaying):
		return http.StatusConflict
	case errors.Is(err, services.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, leadform.ErrStagingFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, leadform.ErrUnknownField),
		errors.Is(err, leadform.ErrInvalidPlan),
		errors.Is(err, leadform.ErrUnknownGoal),
		errors.Is(err, leadform.ErrGoalNotOffered),
		errors.Is(err, services.ErrNotAnImage),
		errors.Is(err, services.ErrEmptyFile),
		errors.Is(err, services.ErrNoFileSelected),
		errors.Is(err, services.ErrCaptchaMissing),
		errors.Is(err, errCaptchaFailed):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var errCaptchaFailed = errors.New("captcha verification failed")

func noticeFor(err error) string {
	switch {
	case errors.Is(err, leadform.ErrFormClosed):
		return "This form was closed. Please open it again."
	case errors.Is(err, errCaptchaFailed), errors.Is(err, services.ErrCaptchaMissing):
		return "Please complete the verification challenge."
	case errors.Is(err, leadform.ErrStagingFull):
		return "We are receiving a lot of uploads right now. Please try again in a few minutes."
	case errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrNotAnImage),
		errors.Is(err, services.ErrEmptyFile),
		errors.Is(err, services.ErrNoFileSelected):
		return err.Error()
	}
	return "That action is not available right now."
}

// LeadStateHandler renders the current modal. The modal polls it while a submission runs.
func LeadStateHandler(c echo.Context) error {
	return renderLead(c, visitorSession(c).Snapshot(), nil)
}

// LeadOpenHandler opens a fresh form with the requested plan preselected
func LeadOpenHandler(c echo.Context) error {
	view := visitorSession(c).Open(c.FormValue("plan"))
	return renderLead(c, view, nil)
}

// LeadCloseHandler discards the form from any phase
func LeadCloseHandler(c echo.Context) error {
	view := visitorSession(c).Close()
	return renderLead(c, view, nil)
}

// LeadFieldHandler updates one field. The field name comes from "field" and its value
// from the form key of the same name.
func LeadFieldHandler(c echo.Context) error {
	field := c.FormValue("field")
	if field == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "field is required")
	}
	view, err := visitorSession(c).Edit(field, c.FormValue(field))
	return renderLead(c, view, err)
}

// LeadToggleGoalHandler adds or removes a goal
func LeadToggleGoalHandler(c echo.Context) error {
	view, err := visitorSession(c).ToggleGoal(c.FormValue("goal"))
	return renderLead(c, view, err)
}

// LeadAdvanceHandler syncs posted fields, checks the captcha when enabled and moves to payment
func LeadAdvanceHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	session := visitorSession(c)

	if err := syncPostedFields(c, session); err != nil {
		return renderLead(c, session.Snapshot(), err)
	}

	verifier := services.NewTurnstileVerifier(cfg.TurnstileSecretKey)
	if err := verifier.Verify(c.Request().Context(), c.FormValue("cf-turnstile-response"), c.RealIP()); err != nil {
		c.Logger().Warnf("Turnstile verification failed for %s: %v", c.RealIP(), err)
		if !errors.Is(err, services.ErrCaptchaMissing) {
			err = errCaptchaFailed
		}
		return renderLead(c, session.Snapshot(), err)
	}

	view, err := session.Advance()
	return renderLead(c, view, err)
}

func syncPostedFields(c echo.Context, session *leadform.Session) error {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	for _, field := range editableFields {
		values, ok := params[field]
		if !ok || len(values) == 0 {
			continue
		}
		if _, err := session.Edit(field, values[0]); err != nil {
			return err
		}
	}
	return nil
}

// LeadAttachmentHandler stages the payment confirmation. Nothing is uploaded until finalize.
func LeadAttachmentHandler(c echo.Context) error {
	session := visitorSession(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return renderLead(c, session.Snapshot(), services.ErrNoFileSelected)
	}

	staged, err := services.StageAttachment(fileHeader)
	if err != nil {
		return renderLead(c, session.Snapshot(), err)
	}

	view, err := session.SelectFile(staged)
	return renderLead(c, view, err)
}

// LeadFinalizeHandler starts the upload and submission. The response shows the submitting
// phase; the modal polls LeadStateHandler for the outcome.
func LeadFinalizeHandler(c echo.Context) error {
	view, err := visitorSession(c).Finalize(c.Request().Context())
	return renderLead(c, view, err)
}
