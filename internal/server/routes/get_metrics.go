package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/report"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/server/util"
	"github.com/vigie-app/vigie/backend/pkg/common"
)

// GetMetricsHandler returns the network metrics together with the per-day
// evolution over the requested window (days param, default 30).
func GetMetricsHandler(c echo.Context) error {
	type getMetricsResponse struct {
		Network   common.NetworkMetrics `json:"network"`
		Days      int                   `json:"days"`
		Evolution report.Evolution      `json:"evolution"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	days := util.BoundedIntParam(c.QueryParam("days"), 30, 1, 365)

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	now := time.Now()
	analyses, err := q.ListAnalysesSince(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, getMetricsResponse{
		Network:   app.Engine.NetworkMetrics(),
		Days:      days,
		Evolution: report.BuildEvolution(analyses, days, now),
	})
}
