package routes

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/queue"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/pkg/logger"
)

// CreateFeedHandler registers a new RSS feed and queues its first fetch.
func CreateFeedHandler(c echo.Context) error {
	type createFeedBody struct {
		Title       string `json:"title" validate:"required"`
		Url         string `json:"url" validate:"required,url"`
		ThemeID     *int64 `json:"theme_id"`
		Enabled     *bool  `json:"enabled"`
		FullContent bool   `json:"full_content"`
	}

	type createFeedResponse struct {
		Message string   `json:"message"`
		Feed    *db.Feed `json:"feed,omitempty"`
	}

	data := new(createFeedBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createFeedResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createFeedResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createFeedResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	themeID := pgtype.Int8{}
	if data.ThemeID != nil {
		themeID = pgtype.Int8{Int64: *data.ThemeID, Valid: true}
	}
	enabled := true
	if data.Enabled != nil {
		enabled = *data.Enabled
	}

	feed, err := q.CreateFeed(ctx, db.CreateFeedParams{
		Title:       data.Title,
		Url:         data.Url,
		ThemeID:     themeID,
		Enabled:     enabled,
		FullContent: data.FullContent,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createFeedResponse{
			Message: "Internal server error",
		})
	}

	if feed.Enabled {
		msgBytes, err := json.Marshal(queue.QueueFetchMsg{
			Message: "Fetch newly registered feed",
			FeedID:  feed.ID,
		})
		if err == nil {
			err = queue.PublishFIFO(app.Queue, queue.FetchQueue, msgBytes)
		}
		if err != nil {
			logger.Warn("[Server] Failed to queue initial fetch", "feed_id", feed.ID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, createFeedResponse{
		Message: "Feed created successfully",
		Feed:    &feed,
	})
}

// RefreshFeedsHandler queues a fetch for every enabled feed.
func RefreshFeedsHandler(c echo.Context) error {
	type refreshFeedsResponse struct {
		Message string `json:"message"`
		Queued  int    `json:"queued"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, refreshFeedsResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	feeds, err := q.ListEnabledFeeds(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, refreshFeedsResponse{
			Message: "Internal server error",
		})
	}

	queued := 0
	for _, feed := range feeds {
		msgBytes, err := json.Marshal(queue.QueueFetchMsg{
			Message: "Manual refresh",
			FeedID:  feed.ID,
		})
		if err != nil {
			logger.Error("[Server] Failed to marshal fetch message", "feed_id", feed.ID, "err", err)
			continue
		}
		if err := queue.PublishFIFO(app.Queue, queue.FetchQueue, msgBytes); err != nil {
			logger.Error("[Server] Failed to queue fetch", "feed_id", feed.ID, "err", err)
			continue
		}
		queued++
	}

	return c.JSON(http.StatusOK, refreshFeedsResponse{
		Message: "Feeds queued for refresh",
		Queued:  queued,
	})
}
