package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/server/util"
)

func GetAlertsHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	alerts, err := q.ListAlerts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, alerts)
}

// GetAlertTriggersHandler returns the most recent alert triggers, newest
// first.
func GetAlertTriggersHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	limit := util.BoundedIntParam(c.QueryParam("limit"), 100, 1, 500)

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	triggers, err := q.ListRecentAlertTriggers(ctx, int32(limit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, triggers)
}
