package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/pkg/logger"
)

const maxRetries = 10

// HandleProcessingError routes a failed delivery to its retry queue, or to
// the DLQ once the retry budget is exhausted. The retry count travels in the
// x-retries header.
func HandleProcessingError(ch *amqp091.Channel, msg amqp091.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	if retries >= maxRetries {
		dlqName := queueName + "_dlq"
		logger.Info("[Queue] Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp091.Publishing{
				ContentType: "application/json",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("[Queue] Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp091.Table{}
	}
	headers["x-retries"] = int32(retries + 1)

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("[Queue] Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}

// RequeueStaleFeeds publishes a fetch message for every enabled feed whose
// last fetch is older than staleAfter. Feeds that never fetched count as
// stale. Used by the scheduled sweep and at worker startup.
func RequeueStaleFeeds(
	ctx context.Context,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	staleAfter time.Duration,
) error {
	q := db.New(conn)

	staleFeeds, err := q.ListStaleFeeds(ctx, time.Now().Add(-staleAfter))
	if err != nil {
		return fmt.Errorf("failed to list stale feeds: %w", err)
	}

	if len(staleFeeds) == 0 {
		logger.Debug("[Queue] No stale feeds found")
		return nil
	}

	logger.Info("[Queue] Found stale feeds", "count", len(staleFeeds))

	for _, feed := range staleFeeds {
		queueData := QueueFetchMsg{
			Message: "Requeued stale feed",
			FeedID:  feed.ID,
		}

		msgBytes, err := json.Marshal(queueData)
		if err != nil {
			logger.Error("[Queue] Failed to marshal fetch message", "feed_id", feed.ID, "err", err)
			continue
		}

		if err := PublishFIFO(ch, FetchQueue, msgBytes); err != nil {
			logger.Error("[Queue] Failed to publish fetch message", "feed_id", feed.ID, "err", err)
			continue
		}

		logger.Info("[Queue] Requeued feed", "feed_id", feed.ID, "title", feed.Title)
	}

	return nil
}
