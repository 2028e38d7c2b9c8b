package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/timing"
	"github.com/vigie-app/vigie/backend/pkg/common"
)

// GetStatusHandler returns the operational view: store counts, pipeline
// stage averages over the last day and the engine metrics.
func GetStatusHandler(c echo.Context) error {
	type getStatusResponse struct {
		EnabledFeeds  int64                    `json:"enabled_feeds"`
		Articles      int64                    `json:"articles"`
		Analyses      int64                    `json:"analyses"`
		StageAverages []db.AvgStageDurationRow `json:"stage_averages"`
		Network       common.NetworkMetrics    `json:"network"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	enabledFeeds, err := q.CountEnabledFeeds(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	articles, err := q.CountArticles(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	analyses, err := q.CountAnalyses(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	stageAverages, err := timing.StageAverages(ctx, app.DBConn, 24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, getStatusResponse{
		EnabledFeeds:  enabledFeeds,
		Articles:      articles,
		Analyses:      analyses,
		StageAverages: stageAverages,
		Network:       app.Engine.NetworkMetrics(),
	})
}
