package handlers

import (
	"net/http"

	"streamgrowth_app_go/db"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the process and its database are reachable
func HealthHandler(c echo.Context) error {
	status := map[string]string{"status": "ok", "database": "ok"}

	if db.DB == nil {
		status["database"] = "not initialized"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		c.Logger().Errorf("Health check database ping failed: %v", err)
		status["status"] = "degraded"
		status["database"] = "unreachable"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}
