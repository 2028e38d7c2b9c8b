package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vigie-app/vigie/backend/internal/alerts"
	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// CreateAlertHandler registers a new keyword alert.
func CreateAlertHandler(c echo.Context) error {
	type createAlertBody struct {
		Name            string   `json:"name" validate:"required"`
		Keywords        []string `json:"keywords" validate:"required,min=1,dive,required"`
		Severity        string   `json:"severity" validate:"omitempty,oneof=info warning critical"`
		CooldownSeconds *int32   `json:"cooldown_seconds" validate:"omitempty,min=0"`
		Enabled         *bool    `json:"enabled"`
	}

	type createAlertResponse struct {
		Message string    `json:"message"`
		Alert   *db.Alert `json:"alert,omitempty"`
	}

	data := new(createAlertBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAlertResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAlertResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createAlertResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	id, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createAlertResponse{
			Message: "Internal server error",
		})
	}

	severity := data.Severity
	if severity == "" {
		severity = alerts.SeverityInfo
	}
	cooldown := int32(3600)
	if data.CooldownSeconds != nil {
		cooldown = *data.CooldownSeconds
	}
	enabled := true
	if data.Enabled != nil {
		enabled = *data.Enabled
	}

	alert, err := q.CreateAlert(ctx, db.CreateAlertParams{
		ID:              id,
		Name:            data.Name,
		Keywords:        data.Keywords,
		Severity:        severity,
		CooldownSeconds: cooldown,
		Enabled:         enabled,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createAlertResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createAlertResponse{
		Message: "Alert created successfully",
		Alert:   &alert,
	})
}
