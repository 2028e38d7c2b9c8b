package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// CreateThemeHandler registers a new theme with its keyword list.
func CreateThemeHandler(c echo.Context) error {
	type createThemeBody struct {
		Name     string   `json:"name" validate:"required"`
		Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
		Enabled  *bool    `json:"enabled"`
	}

	type createThemeResponse struct {
		Message string    `json:"message"`
		Theme   *db.Theme `json:"theme,omitempty"`
	}

	data := new(createThemeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createThemeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createThemeResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createThemeResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	enabled := true
	if data.Enabled != nil {
		enabled = *data.Enabled
	}

	theme, err := q.CreateTheme(ctx, db.CreateThemeParams{
		Name:     data.Name,
		Keywords: data.Keywords,
		Enabled:  enabled,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createThemeResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createThemeResponse{
		Message: "Theme created successfully",
		Theme:   &theme,
	})
}
