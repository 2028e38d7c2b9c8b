package db

import (
	"context"
	"time"
)

const insertReport = `
INSERT INTO reports (id, period_days, file_key)
VALUES ($1, $2, $3)
RETURNING id, period_days, file_key, generated_at
`

type InsertReportParams struct {
	ID         string
	PeriodDays int32
	FileKey    string
}

func (q *Queries) InsertReport(ctx context.Context, arg InsertReportParams) (Report, error) {
	row := q.db.QueryRow(ctx, insertReport, arg.ID, arg.PeriodDays, arg.FileKey)
	var i Report
	err := row.Scan(&i.ID, &i.PeriodDays, &i.FileKey, &i.GeneratedAt)
	return i, err
}

const getLatestReportTime = `
SELECT generated_at
FROM reports
ORDER BY generated_at DESC
LIMIT 1
`

func (q *Queries) GetLatestReportTime(ctx context.Context) (time.Time, error) {
	row := q.db.QueryRow(ctx, getLatestReportTime)
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

const getReport = `
SELECT id, period_days, file_key, generated_at
FROM reports
WHERE id = $1
`

func (q *Queries) GetReport(ctx context.Context, id string) (Report, error) {
	row := q.db.QueryRow(ctx, getReport, id)
	var i Report
	err := row.Scan(&i.ID, &i.PeriodDays, &i.FileKey, &i.GeneratedAt)
	return i, err
}

const listReports = `
SELECT id, period_days, file_key, generated_at
FROM reports
ORDER BY generated_at DESC
LIMIT $1
`

func (q *Queries) ListReports(ctx context.Context, limit int32) ([]Report, error) {
	rows, err := q.db.Query(ctx, listReports, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Report
	for rows.Next() {
		var i Report
		if err := rows.Scan(&i.ID, &i.PeriodDays, &i.FileKey, &i.GeneratedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
