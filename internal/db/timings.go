package db

import (
	"context"
	"time"
)

const insertProcessTiming = `
INSERT INTO process_timings (stage, item_count, duration_ms)
VALUES ($1, $2, $3)
`

type InsertProcessTimingParams struct {
	Stage      string
	ItemCount  int32
	DurationMs int64
}

func (q *Queries) InsertProcessTiming(ctx context.Context, arg InsertProcessTimingParams) error {
	_, err := q.db.Exec(ctx, insertProcessTiming, arg.Stage, arg.ItemCount, arg.DurationMs)
	return err
}

const avgStageDurations = `
SELECT stage,
       avg(duration_ms),
       count(*)
FROM process_timings
WHERE created_at >= $1
GROUP BY stage
ORDER BY stage
`

type AvgStageDurationRow struct {
	Stage   string  `json:"stage"`
	AvgMs   float64 `json:"avg_ms"`
	Samples int64   `json:"samples"`
}

func (q *Queries) AvgStageDurations(ctx context.Context, since time.Time) ([]AvgStageDurationRow, error) {
	rows, err := q.db.Query(ctx, avgStageDurations, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AvgStageDurationRow
	for rows.Next() {
		var i AvgStageDurationRow
		if err := rows.Scan(&i.Stage, &i.AvgMs, &i.Samples); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
