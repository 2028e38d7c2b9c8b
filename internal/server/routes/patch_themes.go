package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// EditThemeHandler updates a theme. Absent fields keep their current value.
func EditThemeHandler(c echo.Context) error {
	type editThemeData struct {
		ThemeID  int64     `param:"id" validate:"required,numeric"`
		Name     *string   `json:"name"`
		Keywords *[]string `json:"keywords" validate:"omitempty,min=1,dive,required"`
		Enabled  *bool     `json:"enabled"`
	}

	type editThemeResponse struct {
		Message string    `json:"message"`
		Theme   *db.Theme `json:"theme,omitempty"`
	}

	data := new(editThemeData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editThemeResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editThemeResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, editThemeResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	theme, err := q.GetTheme(ctx, data.ThemeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, editThemeResponse{
				Message: "Theme not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, editThemeResponse{
			Message: "Internal server error",
		})
	}

	params := db.UpdateThemeParams{
		ID:       theme.ID,
		Name:     theme.Name,
		Keywords: theme.Keywords,
		Enabled:  theme.Enabled,
	}
	if data.Name != nil {
		params.Name = *data.Name
	}
	if data.Keywords != nil {
		params.Keywords = *data.Keywords
	}
	if data.Enabled != nil {
		params.Enabled = *data.Enabled
	}

	updated, err := q.UpdateTheme(ctx, params)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, editThemeResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, editThemeResponse{
		Message: "Theme updated successfully",
		Theme:   &updated,
	})
}
