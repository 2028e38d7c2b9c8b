package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createFeed = `
INSERT INTO feeds (title, url, theme_id, enabled, full_content)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, title, url, theme_id, enabled, full_content, last_fetched_at, created_at
`

type CreateFeedParams struct {
	Title       string
	Url         string
	ThemeID     pgtype.Int8
	Enabled     bool
	FullContent bool
}

func (q *Queries) CreateFeed(ctx context.Context, arg CreateFeedParams) (Feed, error) {
	row := q.db.QueryRow(ctx, createFeed, arg.Title, arg.Url, arg.ThemeID, arg.Enabled, arg.FullContent)
	var i Feed
	err := row.Scan(&i.ID, &i.Title, &i.Url, &i.ThemeID, &i.Enabled, &i.FullContent, &i.LastFetchedAt, &i.CreatedAt)
	return i, err
}

const getFeed = `
SELECT id, title, url, theme_id, enabled, full_content, last_fetched_at, created_at
FROM feeds
WHERE id = $1
`

func (q *Queries) GetFeed(ctx context.Context, id int64) (Feed, error) {
	row := q.db.QueryRow(ctx, getFeed, id)
	var i Feed
	err := row.Scan(&i.ID, &i.Title, &i.Url, &i.ThemeID, &i.Enabled, &i.FullContent, &i.LastFetchedAt, &i.CreatedAt)
	return i, err
}

const listFeeds = `
SELECT id, title, url, theme_id, enabled, full_content, last_fetched_at, created_at
FROM feeds
ORDER BY id
`

func (q *Queries) ListFeeds(ctx context.Context) ([]Feed, error) {
	rows, err := q.db.Query(ctx, listFeeds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeeds(rows)
}

const listEnabledFeeds = `
SELECT id, title, url, theme_id, enabled, full_content, last_fetched_at, created_at
FROM feeds
WHERE enabled = TRUE
ORDER BY id
`

func (q *Queries) ListEnabledFeeds(ctx context.Context) ([]Feed, error) {
	rows, err := q.db.Query(ctx, listEnabledFeeds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeeds(rows)
}

const listStaleFeeds = `
SELECT id, title, url, theme_id, enabled, full_content, last_fetched_at, created_at
FROM feeds
WHERE enabled = TRUE
  AND (last_fetched_at IS NULL OR last_fetched_at < $1)
ORDER BY id
`

func (q *Queries) ListStaleFeeds(ctx context.Context, olderThan time.Time) ([]Feed, error) {
	rows, err := q.db.Query(ctx, listStaleFeeds, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeeds(rows)
}

const updateFeed = `
UPDATE feeds
SET title = $2, url = $3, theme_id = $4, enabled = $5, full_content = $6
WHERE id = $1
RETURNING id, title, url, theme_id, enabled, full_content, last_fetched_at, created_at
`

type UpdateFeedParams struct {
	ID          int64
	Title       string
	Url         string
	ThemeID     pgtype.Int8
	Enabled     bool
	FullContent bool
}

func (q *Queries) UpdateFeed(ctx context.Context, arg UpdateFeedParams) (Feed, error) {
	row := q.db.QueryRow(ctx, updateFeed, arg.ID, arg.Title, arg.Url, arg.ThemeID, arg.Enabled, arg.FullContent)
	var i Feed
	err := row.Scan(&i.ID, &i.Title, &i.Url, &i.ThemeID, &i.Enabled, &i.FullContent, &i.LastFetchedAt, &i.CreatedAt)
	return i, err
}

const deleteFeed = `
DELETE FROM feeds
WHERE id = $1
`

func (q *Queries) DeleteFeed(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteFeed, id)
	return err
}

const touchFeedFetched = `
UPDATE feeds
SET last_fetched_at = now()
WHERE id = $1
`

func (q *Queries) TouchFeedFetched(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, touchFeedFetched, id)
	return err
}

const countEnabledFeeds = `
SELECT count(*)
FROM feeds
WHERE enabled = TRUE
`

func (q *Queries) CountEnabledFeeds(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countEnabledFeeds).Scan(&count)
	return count, err
}

func scanFeeds(rows pgx.Rows) ([]Feed, error) {
	var items []Feed
	for rows.Next() {
		var i Feed
		if err := rows.Scan(&i.ID, &i.Title, &i.Url, &i.ThemeID, &i.Enabled, &i.FullContent, &i.LastFetchedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
