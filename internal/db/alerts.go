package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createAlert = `
INSERT INTO alerts (id, name, keywords, severity, cooldown_seconds, enabled)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, keywords, severity, cooldown_seconds, enabled, created_at
`

type CreateAlertParams struct {
	ID              string
	Name            string
	Keywords        []string
	Severity        string
	CooldownSeconds int32
	Enabled         bool
}

func (q *Queries) CreateAlert(ctx context.Context, arg CreateAlertParams) (Alert, error) {
	row := q.db.QueryRow(ctx, createAlert,
		arg.ID, arg.Name, arg.Keywords, arg.Severity, arg.CooldownSeconds, arg.Enabled)
	var i Alert
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Severity, &i.CooldownSeconds, &i.Enabled, &i.CreatedAt)
	return i, err
}

const getAlert = `
SELECT id, name, keywords, severity, cooldown_seconds, enabled, created_at
FROM alerts
WHERE id = $1
`

func (q *Queries) GetAlert(ctx context.Context, id string) (Alert, error) {
	row := q.db.QueryRow(ctx, getAlert, id)
	var i Alert
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Severity, &i.CooldownSeconds, &i.Enabled, &i.CreatedAt)
	return i, err
}

const listAlerts = `
SELECT id, name, keywords, severity, cooldown_seconds, enabled, created_at
FROM alerts
ORDER BY created_at
`

func (q *Queries) ListAlerts(ctx context.Context) ([]Alert, error) {
	rows, err := q.db.Query(ctx, listAlerts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

const listEnabledAlerts = `
SELECT id, name, keywords, severity, cooldown_seconds, enabled, created_at
FROM alerts
WHERE enabled = TRUE
ORDER BY created_at
`

func (q *Queries) ListEnabledAlerts(ctx context.Context) ([]Alert, error) {
	rows, err := q.db.Query(ctx, listEnabledAlerts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlerts(rows)
}

const updateAlert = `
UPDATE alerts
SET name = $2, keywords = $3, severity = $4, cooldown_seconds = $5, enabled = $6
WHERE id = $1
RETURNING id, name, keywords, severity, cooldown_seconds, enabled, created_at
`

type UpdateAlertParams struct {
	ID              string
	Name            string
	Keywords        []string
	Severity        string
	CooldownSeconds int32
	Enabled         bool
}

func (q *Queries) UpdateAlert(ctx context.Context, arg UpdateAlertParams) (Alert, error) {
	row := q.db.QueryRow(ctx, updateAlert,
		arg.ID, arg.Name, arg.Keywords, arg.Severity, arg.CooldownSeconds, arg.Enabled)
	var i Alert
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Severity, &i.CooldownSeconds, &i.Enabled, &i.CreatedAt)
	return i, err
}

const deleteAlert = `
DELETE FROM alerts
WHERE id = $1
`

func (q *Queries) DeleteAlert(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteAlert, id)
	return err
}

const insertAlertTrigger = `
INSERT INTO alert_triggers (alert_id, article_id, article_title, severity, matched)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, alert_id, article_id, article_title, severity, matched, triggered_at
`

type InsertAlertTriggerParams struct {
	AlertID      string
	ArticleID    string
	ArticleTitle string
	Severity     string
	Matched      []string
}

func (q *Queries) InsertAlertTrigger(ctx context.Context, arg InsertAlertTriggerParams) (AlertTrigger, error) {
	row := q.db.QueryRow(ctx, insertAlertTrigger,
		arg.AlertID, arg.ArticleID, arg.ArticleTitle, arg.Severity, arg.Matched)
	var i AlertTrigger
	err := row.Scan(&i.ID, &i.AlertID, &i.ArticleID, &i.ArticleTitle, &i.Severity, &i.Matched, &i.TriggeredAt)
	return i, err
}

const listRecentAlertTriggers = `
SELECT id, alert_id, article_id, article_title, severity, matched, triggered_at
FROM alert_triggers
ORDER BY triggered_at DESC
LIMIT $1
`

func (q *Queries) ListRecentAlertTriggers(ctx context.Context, limit int32) ([]AlertTrigger, error) {
	rows, err := q.db.Query(ctx, listRecentAlertTriggers, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AlertTrigger
	for rows.Next() {
		var i AlertTrigger
		if err := rows.Scan(&i.ID, &i.AlertID, &i.ArticleID, &i.ArticleTitle, &i.Severity, &i.Matched, &i.TriggeredAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const lastAlertTriggerAt = `
SELECT max(triggered_at)
FROM alert_triggers
WHERE alert_id = $1
`

func (q *Queries) LastAlertTriggerAt(ctx context.Context, alertID string) (pgtype.Timestamptz, error) {
	var last pgtype.Timestamptz
	err := q.db.QueryRow(ctx, lastAlertTriggerAt, alertID).Scan(&last)
	return last, err
}

const countAlertTriggersSince = `
SELECT count(*)
FROM alert_triggers
WHERE triggered_at >= $1
`

func (q *Queries) CountAlertTriggersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countAlertTriggersSince, since).Scan(&count)
	return count, err
}

const listCriticalTriggersSince = `
SELECT id, alert_id, article_id, article_title, severity, matched, triggered_at
FROM alert_triggers
WHERE severity = 'critical' AND triggered_at >= $1
ORDER BY triggered_at DESC
`

func (q *Queries) ListCriticalTriggersSince(ctx context.Context, since time.Time) ([]AlertTrigger, error) {
	rows, err := q.db.Query(ctx, listCriticalTriggersSince, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AlertTrigger
	for rows.Next() {
		var i AlertTrigger
		if err := rows.Scan(&i.ID, &i.AlertID, &i.ArticleID, &i.ArticleTitle, &i.Severity, &i.Matched, &i.TriggeredAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanAlerts(rows pgx.Rows) ([]Alert, error) {
	var items []Alert
	for rows.Next() {
		var i Alert
		if err := rows.Scan(&i.ID, &i.Name, &i.Keywords, &i.Severity, &i.CooldownSeconds, &i.Enabled, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
