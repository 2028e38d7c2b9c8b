package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// EditAlertHandler updates an alert. Absent fields keep their current
// value.
func EditAlertHandler(c echo.Context) error {
	type editAlertData struct {
		AlertID         string    `param:"id" validate:"required"`
		Name            *string   `json:"name"`
		Keywords        *[]string `json:"keywords" validate:"omitempty,min=1,dive,required"`
		Severity        *string   `json:"severity" validate:"omitempty,oneof=info warning critical"`
		CooldownSeconds *int32    `json:"cooldown_seconds" validate:"omitempty,min=0"`
		Enabled         *bool     `json:"enabled"`
	}

	type editAlertResponse struct {
		Message string    `json:"message"`
		Alert   *db.Alert `json:"alert,omitempty"`
	}

	data := new(editAlertData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editAlertResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editAlertResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, editAlertResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	alert, err := q.GetAlert(ctx, data.AlertID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, editAlertResponse{
				Message: "Alert not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, editAlertResponse{
			Message: "Internal server error",
		})
	}

	params := db.UpdateAlertParams{
		ID:              alert.ID,
		Name:            alert.Name,
		Keywords:        alert.Keywords,
		Severity:        alert.Severity,
		CooldownSeconds: alert.CooldownSeconds,
		Enabled:         alert.Enabled,
	}
	if data.Name != nil {
		params.Name = *data.Name
	}
	if data.Keywords != nil {
		params.Keywords = *data.Keywords
	}
	if data.Severity != nil {
		params.Severity = *data.Severity
	}
	if data.CooldownSeconds != nil {
		params.CooldownSeconds = *data.CooldownSeconds
	}
	if data.Enabled != nil {
		params.Enabled = *data.Enabled
	}

	updated, err := q.UpdateAlert(ctx, params)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, editAlertResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, editAlertResponse{
		Message: "Alert updated successfully",
		Alert:   &updated,
	})
}
