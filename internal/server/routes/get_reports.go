package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/server/util"
	"github.com/vigie-app/vigie/backend/internal/storage"
	"github.com/vigie-app/vigie/backend/pkg/logger"
)

// GetReportsHandler lists generated reports, newest first, each with a
// fresh presigned download link.
func GetReportsHandler(c echo.Context) error {
	type reportEntry struct {
		db.Report
		DownloadURL string `json:"download_url,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	limit := util.BoundedIntParam(c.QueryParam("limit"), 50, 1, 200)

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	reports, err := q.ListReports(ctx, int32(limit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	entries := make([]reportEntry, 0, len(reports))
	for _, row := range reports {
		link, err := storage.GenerateDownloadLink(ctx, app.S3, row.FileKey)
		if err != nil {
			logger.Warn("[Server] Failed to presign report link", "report_id", row.ID, "err", err)
			link = ""
		}
		entries = append(entries, reportEntry{Report: row, DownloadURL: link})
	}

	return c.JSON(http.StatusOK, entries)
}

// GetReportHandler serves one report document straight from S3, for clients
// that cannot reach the presigned endpoint.
func GetReportHandler(c echo.Context) error {
	type getReportParams struct {
		ReportID string `param:"id" validate:"required"`
	}

	params := new(getReportParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	row, err := q.GetReport(ctx, params.ReportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Report not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	data, err := storage.GetFile(ctx, app.S3, row.FileKey)
	if err != nil {
		logger.Error("[Server] Failed to load report file", "report_id", row.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSONBlob(http.StatusOK, data)
}
