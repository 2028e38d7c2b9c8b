package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// DeleteAlertHandler removes an alert and its trigger history.
func DeleteAlertHandler(c echo.Context) error {
	type deleteAlertParams struct {
		AlertID string `param:"id" validate:"required"`
	}

	type deleteAlertResponse struct {
		Message string `json:"message"`
	}

	params := new(deleteAlertParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteAlertResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteAlertResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, deleteAlertResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	if err := q.DeleteAlert(ctx, params.AlertID); err != nil {
		return c.JSON(http.StatusInternalServerError, deleteAlertResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteAlertResponse{
		Message: "Alert deleted successfully",
	})
}
