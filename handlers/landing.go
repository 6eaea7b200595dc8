package handlers

import (
	"streamgrowth_app_go/config"
	"streamgrowth_app_go/middleware"
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/templates/pages"
	"streamgrowth_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

const landingTitle = "StreamGrowth - Grow Your Twitch Channel"

// LandingHandler renders the marketing page with the visitor's current form state
func LandingHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	view := visitorSession(c).Snapshot()

	modal := partials.NewLeadModalViewModel(view, middleware.GetCSRFToken(c), cfg.TurnstileSiteKey)
	return render(c, pages.Landing(pages.NewLandingViewModel(landingTitle, modal)))
}

// StoriesHandler returns the full success stories modal
func StoriesHandler(c echo.Context) error {
	return render(c, partials.SuccessStoriesModal(models.SuccessStories))
}
