package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/feeds"
	"github.com/vigie-app/vigie/backend/internal/queue"
	"github.com/vigie-app/vigie/backend/internal/util"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vigie-app/vigie/backend/pkg/leaselock"
	"github.com/vigie-app/vigie/backend/pkg/logger"
	"github.com/vigie-app/vigie/backend/pkg/logger/console"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Level: util.GetEnvString("LOG_LEVEL", "info"),
	})
	logger.Init(consoleLogger)

	// Init pgx client
	pgConn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	// Init rabbitmq queues if not exist
	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, queue.AllQueues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	fetcher := feeds.NewFetcher(feeds.NewFetcherParams{
		Timeout:  util.GetEnvDuration("FETCH_TIMEOUT_SEC", 20, time.Second),
		MinDelay: util.GetEnvDuration("FETCH_MIN_DELAY_MS", 500, time.Millisecond),
		Parallel: int(util.GetEnvNumeric("FETCH_PARALLEL", 4)),
	})

	locks := leaselock.New(pgConn)

	logger.Info("Listening for messages")

	// Create a single consumer channel with prefetch=1
	// This ensures only ONE message is delivered at a time across all queues
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	err = consumerCh.Qos(1, 0, true)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	type queuedMessage struct {
		msg       amqp.Delivery
		queueName string
	}

	messageChan := make(chan queuedMessage)

	queues := []string{queue.FetchQueue}
	for _, queueName := range queues {
		go func(qName string) {
			consumerTag := fmt.Sprintf("%s_consumer", qName)
			msgs, err := consumerCh.Consume(
				qName,
				consumerTag,
				false, // autoAck
				false, // exclusive
				false, // noLocal
				false, // noWait
				nil,   // args
			)
			if err != nil {
				logger.Fatal("Failed to start consuming", "queue", qName, "err", err)
			}

			for {
				select {
				case <-ctx.Done():
					logger.Info("Stopping consumer", "queue", qName)
					return
				case msg, ok := <-msgs:
					if !ok {
						logger.Info("Message channel closed", "queue", qName)
						return
					}
					messageChan <- queuedMessage{msg: msg, queueName: qName}
				}
			}
		}(queueName)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case qm := <-messageChan:
				startTime := time.Now()
				logger.Info("Received message", "queue", qm.queueName)

				var processingErr error
				switch qm.queueName {
				case queue.FetchQueue:
					processingErr = queue.ProcessFetchMessage(ctx, fetcher, ch, pgConn, string(qm.msg.Body))
				}

				if processingErr != nil {
					logger.Error("Error processing message", "queue", qm.queueName, "err", processingErr)
					queue.HandleProcessingError(consumerCh, qm.msg, qm.queueName)
				} else {
					if err := qm.msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
				}

				logger.Info("Message processed", "queue", qm.queueName, "duration", time.Since(startTime))
			}
		}
	}()

	go runSchedulers(ctx, locks, ch, pgConn)

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

// runSchedulers drives the periodic work: a stale-feed sweep every fetch
// interval and one report publish per day at REPORT_HOUR. Each fires under a
// lease, so with several workers running only one of them acts per tick.
func runSchedulers(ctx context.Context, locks *leaselock.Client, ch *amqp.Channel, conn *pgxpool.Pool) {
	fetchInterval := util.GetEnvDuration("FETCH_INTERVAL_MIN", 15, time.Minute)
	reportHour := int(util.GetEnvNumeric("REPORT_HOUR", 8))

	// Sweep once at startup so a fresh deployment does not wait a full interval.
	if util.GetEnvBool("FETCH_ON_START", true) {
		sweepStaleFeeds(ctx, locks, ch, conn, fetchInterval)
	}

	fetchTicker := time.NewTicker(fetchInterval)
	defer fetchTicker.Stop()

	// Checked every minute; the latest-report guard keeps it to one publish per day.
	reportTicker := time.NewTicker(time.Minute)
	defer reportTicker.Stop()

	var reportedOn string
	for {
		select {
		case <-ctx.Done():
			return
		case <-fetchTicker.C:
			sweepStaleFeeds(ctx, locks, ch, conn, fetchInterval)
		case now := <-reportTicker.C:
			if now.Hour() != reportHour {
				continue
			}
			today := now.Format("2006-01-02")
			if reportedOn == today {
				continue
			}

			err := publishScheduledReport(ctx, locks, ch, conn)
			if errors.Is(err, leaselock.ErrBusy) {
				continue
			}
			if err != nil {
				logger.Error("Scheduled report publish failed", "err", err)
				continue
			}
			reportedOn = today
		}
	}
}

// sweepStaleFeeds requeues every enabled feed that has not fetched within one
// interval. ErrBusy means another worker holds the sweep, which is fine.
func sweepStaleFeeds(
	ctx context.Context,
	locks *leaselock.Client,
	ch *amqp.Channel,
	conn *pgxpool.Pool,
	staleAfter time.Duration,
) {
	err := locks.WithLease(ctx, "fetch_sweep", leaselock.Options{TTL: time.Minute}, func(ctx context.Context) error {
		return queue.RequeueStaleFeeds(ctx, ch, conn, staleAfter)
	})
	switch {
	case errors.Is(err, leaselock.ErrBusy):
		logger.Debug("Fetch sweep already running elsewhere")
	case err != nil:
		logger.Error("Fetch sweep failed", "err", err)
	}
}

// publishScheduledReport queues the daily report unless one was already
// generated today. The check runs under the lease, so two workers landing on
// the same minute cannot both publish.
func publishScheduledReport(
	ctx context.Context,
	locks *leaselock.Client,
	ch *amqp.Channel,
	conn *pgxpool.Pool,
) error {
	return locks.WithLease(ctx, "report_publish", leaselock.Options{TTL: time.Minute}, func(ctx context.Context) error {
		last, err := db.New(conn).GetLatestReportTime(ctx)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if err == nil && last.Format("2006-01-02") == time.Now().Format("2006-01-02") {
			return nil
		}

		periodDays := int(util.GetEnvNumeric("REPORT_PERIOD_DAYS", 7))
		msgBytes, err := json.Marshal(queue.QueueReportMsg{
			Message:    "Scheduled daily report",
			PeriodDays: periodDays,
		})
		if err != nil {
			return err
		}

		logger.Info("Publishing daily report", "period_days", periodDays)
		return queue.PublishFIFO(ch, queue.ReportQueue, msgBytes)
	})
}
