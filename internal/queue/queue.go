// Package queue wires the RabbitMQ pipeline: fetch_queue pulls feeds,
// analyze_queue runs articles through the relation engine, report_queue
// builds period reports. Each queue gets a _retry companion that dead-letters
// back after a delay, and a _dlq for messages that exhausted their retries.
package queue

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/logger"
)

const (
	FetchQueue   = "fetch_queue"
	AnalyzeQueue = "analyze_queue"
	ReportQueue  = "report_queue"
)

// AllQueues is declared by both server and worker so either can start first.
var AllQueues = []string{FetchQueue, AnalyzeQueue, ReportQueue}

type QueueFetchMsg struct {
	Message string `json:"message"`
	FeedID  int64  `json:"feed_id"`
}

type QueueAnalyzeMsg struct {
	Message    string   `json:"message"`
	FeedID     int64    `json:"feed_id,omitempty"`
	ArticleIDs []string `json:"article_ids"`
}

type QueueReportMsg struct {
	Message    string `json:"message"`
	PeriodDays int    `json:"period_days"`
}

func Init() *amqp091.Connection {
	user := util.GetEnv("RABBITMQ_USER")
	pass := util.GetEnv("RABBITMQ_PASSWORD")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnv("RABBITMQ_PORT")

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", "err", err)
	}

	return conn
}

func SetupQueues(ch *amqp091.Channel, queueNames []string) error {
	for _, name := range queueNames {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return fmt.Errorf("queue declare failed for %s: %w", name, err)
		}

		dlqName := name + "_dlq"
		_, err = ch.QueueDeclare(
			dlqName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("queue declare failed for %s: %w", dlqName, err)
		}

		retryName := name + "_retry"
		_, err = ch.QueueDeclare(
			retryName,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(10000),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return fmt.Errorf("queue declare failed for %s: %w", retryName, err)
		}
	}

	return nil
}

func PublishFIFO(ch *amqp091.Channel, queueName string, data []byte) error {
	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	err = ch.Publish(
		"",
		q.Name,
		false,
		false,
		publishing,
	)
	if err != nil {
		return err
	}

	return nil
}
