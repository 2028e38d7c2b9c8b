package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/pkg/common"
)

// GetRelationsHandler returns the current relation network, optionally
// filtered to one relation type.
func GetRelationsHandler(c echo.Context) error {
	type getRelationsParams struct {
		Type string `query:"type" validate:"omitempty,oneof=cooperative tense conflict neutral"`
	}

	type getRelationsResponse struct {
		Relations []common.RelationRecord `json:"relations"`
		Count     int                     `json:"count"`
	}

	params := new(getRelationsParams)
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

	engine := c.(*middleware.AppContext).App.Engine
	records := engine.Snapshot()

	if params.Type != "" {
		filtered := records[:0]
		for _, record := range records {
			if record.Type == common.RelationType(params.Type) {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	return c.JSON(http.StatusOK, getRelationsResponse{
		Relations: records,
		Count:     len(records),
	})
}

// GetCrisisRelationsHandler returns the relations classified as conflict.
func GetCrisisRelationsHandler(c echo.Context) error {
	type getCrisisResponse struct {
		Relations []common.RelationRecord `json:"relations"`
		Count     int                     `json:"count"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	engine := c.(*middleware.AppContext).App.Engine
	crisis := engine.CrisisRelations()

	return c.JSON(http.StatusOK, getCrisisResponse{
		Relations: crisis,
		Count:     len(crisis),
	})
}
