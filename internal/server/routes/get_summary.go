package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/server/util"
)

// GetSummaryHandler returns aggregate totals over the requested window
// (days param, default 7).
func GetSummaryHandler(c echo.Context) error {
	type getSummaryResponse struct {
		Days          int     `json:"days"`
		Articles      int64   `json:"articles"`
		Analyses      int64   `json:"analyses"`
		AvgSentiment  float64 `json:"avg_sentiment"`
		AvgConfidence float64 `json:"avg_confidence"`
		AlertsFired   int64   `json:"alerts_fired"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	days := util.BoundedIntParam(c.QueryParam("days"), 7, 1, 365)
	since := time.Now().AddDate(0, 0, -days)

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	articles, err := q.CountArticlesSince(ctx, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	summary, err := q.GetAnalysisSummary(ctx, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	alertsFired, err := q.CountAlertTriggersSince(ctx, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, getSummaryResponse{
		Days:          days,
		Articles:      articles,
		Analyses:      summary.Count,
		AvgSentiment:  summary.AvgSentiment,
		AvgConfidence: summary.AvgConfidence,
		AlertsFired:   alertsFired,
	})
}
