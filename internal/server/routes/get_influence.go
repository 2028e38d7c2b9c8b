package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/pkg/relations"
)

// GetInfluenceHandler returns the influence score of one country. The
// country may be given as any known alias (france, usa, gaza, ...).
func GetInfluenceHandler(c echo.Context) error {
	type getInfluenceResponse struct {
		Country string  `json:"country"`
		Score   float64 `json:"score"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	country, ok := relations.NormalizeCountry(c.Param("country"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown country"})
	}

	engine := c.(*middleware.AppContext).App.Engine

	return c.JSON(http.StatusOK, getInfluenceResponse{
		Country: country,
		Score:   engine.InfluenceScore(country),
	})
}
