package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// DeleteFeedHandler removes a feed. Its articles stay, detached from the
// feed.
func DeleteFeedHandler(c echo.Context) error {
	type deleteFeedParams struct {
		FeedID int64 `param:"id" validate:"required,numeric"`
	}

	type deleteFeedResponse struct {
		Message string `json:"message"`
	}

	params := new(deleteFeedParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteFeedResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteFeedResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, deleteFeedResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	if err := q.DeleteFeed(ctx, params.FeedID); err != nil {
		return c.JSON(http.StatusInternalServerError, deleteFeedResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteFeedResponse{
		Message: "Feed deleted successfully",
	})
}
