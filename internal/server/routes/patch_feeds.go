package routes

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
)

// EditFeedHandler updates a feed. Absent fields keep their current value;
// theme_id 0 clears the theme.
func EditFeedHandler(c echo.Context) error {
	type editFeedData struct {
		FeedID      int64   `param:"id" validate:"required,numeric"`
		Title       *string `json:"title"`
		Url         *string `json:"url" validate:"omitempty,url"`
		ThemeID     *int64  `json:"theme_id"`
		Enabled     *bool   `json:"enabled"`
		FullContent *bool   `json:"full_content"`
	}

	type editFeedResponse struct {
		Message string   `json:"message"`
		Feed    *db.Feed `json:"feed,omitempty"`
	}

	data := new(editFeedData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editFeedResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editFeedResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, editFeedResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	feed, err := q.GetFeed(ctx, data.FeedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, editFeedResponse{
				Message: "Feed not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, editFeedResponse{
			Message: "Internal server error",
		})
	}

	params := db.UpdateFeedParams{
		ID:          feed.ID,
		Title:       feed.Title,
		Url:         feed.Url,
		ThemeID:     feed.ThemeID,
		Enabled:     feed.Enabled,
		FullContent: feed.FullContent,
	}
	if data.Title != nil {
		params.Title = *data.Title
	}
	if data.Url != nil {
		params.Url = *data.Url
	}
	if data.ThemeID != nil {
		if *data.ThemeID == 0 {
			params.ThemeID = pgtype.Int8{}
		} else {
			params.ThemeID = pgtype.Int8{Int64: *data.ThemeID, Valid: true}
		}
	}
	if data.Enabled != nil {
		params.Enabled = *data.Enabled
	}
	if data.FullContent != nil {
		params.FullContent = *data.FullContent
	}

	updated, err := q.UpdateFeed(ctx, params)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, editFeedResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, editFeedResponse{
		Message: "Feed updated successfully",
		Feed:    &updated,
	})
}
