// Package timing records how long pipeline stages take, feeding the status
// endpoint's averages.
package timing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vigie-app/vigie/backend/internal/db"
)

const (
	StageFetch   = "fetch"
	StageAnalyze = "analyze"
	StageReport  = "report"
)

func Record(
	ctx context.Context,
	conn *pgxpool.Pool,
	stage string,
	itemCount int,
	duration time.Duration,
) error {
	q := db.New(conn)

	return q.InsertProcessTiming(ctx, db.InsertProcessTimingParams{
		Stage:      stage,
		ItemCount:  int32(itemCount),
		DurationMs: duration.Milliseconds(),
	})
}

// StageAverages returns per-stage average durations over the past window.
func StageAverages(ctx context.Context, conn *pgxpool.Pool, window time.Duration) ([]db.AvgStageDurationRow, error) {
	q := db.New(conn)

	return q.AvgStageDurations(ctx, time.Now().Add(-window))
}
