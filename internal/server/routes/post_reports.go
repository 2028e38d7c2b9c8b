package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/report"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/util"
)

// GenerateReportHandler builds a report for the requested period, uploads
// it to S3 and returns a presigned download link.
func GenerateReportHandler(c echo.Context) error {
	type generateReportBody struct {
		PeriodDays int `json:"period_days" validate:"omitempty,min=1,max=365"`
	}

	type generateReportResponse struct {
		Message     string     `json:"message"`
		Report      *db.Report `json:"report,omitempty"`
		DownloadURL string     `json:"download_url,omitempty"`
	}

	data := new(generateReportBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, generateReportResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, generateReportResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, generateReportResponse{
			Message: "Unauthorized",
		})
	}

	periodDays := data.PeriodDays
	if periodDays == 0 {
		periodDays = int(util.GetEnvNumeric("REPORT_PERIOD_DAYS", 7))
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	row, link, err := report.Generate(ctx, app.DBConn, app.S3, app.Engine, periodDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, generateReportResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, generateReportResponse{
		Message:     "Report generated successfully",
		Report:      &row,
		DownloadURL: link,
	})
}
