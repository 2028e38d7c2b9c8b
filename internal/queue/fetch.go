package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/feeds"
	"github.com/vigie-app/vigie/backend/internal/timing"
	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/logger"
)

// ProcessFetchMessage pulls one feed, stores its articles and queues the
// newly seen ones for analysis. A feed that was deleted or disabled after
// the message was enqueued is skipped without error.
func ProcessFetchMessage(
	ctx context.Context,
	fetcher *feeds.Fetcher,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	msg string,
) (err error) {
	start := time.Now()

	data := new(QueueFetchMsg)
	if err = json.Unmarshal([]byte(msg), &data); err != nil {
		return err
	}

	q := db.New(conn)

	feed, err := q.GetFeed(ctx, data.FeedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("[Queue] Feed no longer exists, skipping", "feed_id", data.FeedID)
			return nil
		}
		return fmt.Errorf("failed to load feed %d: %w", data.FeedID, err)
	}
	if !feed.Enabled {
		logger.Info("[Queue] Feed disabled, skipping", "feed_id", feed.ID)
		return nil
	}

	articles, err := fetcher.FetchFeed(ctx, feed.Url, feed.FullContent)
	if err != nil {
		return fmt.Errorf("failed to fetch feed %d: %w", feed.ID, err)
	}

	newIDs := make([]string, 0, len(articles))
	for _, article := range articles {
		inserted, err := q.InsertArticle(ctx, db.InsertArticleParams{
			ID:      article.ID,
			FeedID:  pgtype.Int8{Int64: feed.ID, Valid: true},
			Title:   util.SanitizePostgresText(article.Title),
			Content: util.SanitizePostgresText(article.Content),
			Link:    article.Link,
			Source:  article.Source,
			PublishedAt: pgtype.Timestamptz{
				Time:  article.PublishedAt,
				Valid: !article.PublishedAt.IsZero(),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to insert article %s: %w", article.ID, err)
		}
		if inserted {
			newIDs = append(newIDs, article.ID)
		}
	}

	if err := q.TouchFeedFetched(ctx, feed.ID); err != nil {
		return fmt.Errorf("failed to mark feed %d as fetched: %w", feed.ID, err)
	}

	if len(newIDs) > 0 {
		queueData := QueueAnalyzeMsg{
			Message:    "New articles fetched",
			FeedID:     feed.ID,
			ArticleIDs: newIDs,
		}
		msgBytes, err := json.Marshal(queueData)
		if err != nil {
			return err
		}
		if err := PublishFIFO(ch, AnalyzeQueue, msgBytes); err != nil {
			return fmt.Errorf("failed to queue articles for analysis: %w", err)
		}
	}

	if err := timing.Record(ctx, conn, timing.StageFetch, len(articles), time.Since(start)); err != nil {
		logger.Warn("[Queue] Failed to record fetch timing", "feed_id", feed.ID, "err", err)
	}

	logger.Info("[Queue] Feed fetched", "feed_id", feed.ID, "articles", len(articles), "new", len(newIDs))
	return nil
}
