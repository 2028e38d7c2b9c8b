package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// DeleteThemeHandler removes a theme. Feeds assigned to it fall back to no
// theme.
func DeleteThemeHandler(c echo.Context) error {
	type deleteThemeParams struct {
		ThemeID int64 `param:"id" validate:"required,numeric"`
	}

	type deleteThemeResponse struct {
		Message string `json:"message"`
	}

	params := new(deleteThemeParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteThemeResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteThemeResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, deleteThemeResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	if err := q.DeleteTheme(ctx, params.ThemeID); err != nil {
		return c.JSON(http.StatusInternalServerError, deleteThemeResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteThemeResponse{
		Message: "Theme deleted successfully",
	})
}
