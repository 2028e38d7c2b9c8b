package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertArticle = `
INSERT INTO articles (id, feed_id, title, content, link, source, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (link) DO NOTHING
`

type InsertArticleParams struct {
	ID          string
	FeedID      pgtype.Int8
	Title       string
	Content     string
	Link        string
	Source      string
	PublishedAt pgtype.Timestamptz
}

// InsertArticle reports whether the row was actually inserted. Duplicate
// links are silently skipped so re-fetched feeds do not pile up copies.
func (q *Queries) InsertArticle(ctx context.Context, arg InsertArticleParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertArticle,
		arg.ID, arg.FeedID, arg.Title, arg.Content, arg.Link, arg.Source, arg.PublishedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const getArticle = `
SELECT id, feed_id, title, content, link, source, published_at, created_at
FROM articles
WHERE id = $1
`

func (q *Queries) GetArticle(ctx context.Context, id string) (Article, error) {
	row := q.db.QueryRow(ctx, getArticle, id)
	var i Article
	err := row.Scan(&i.ID, &i.FeedID, &i.Title, &i.Content, &i.Link, &i.Source, &i.PublishedAt, &i.CreatedAt)
	return i, err
}

const getArticlesByIDs = `
SELECT id, feed_id, title, content, link, source, published_at, created_at
FROM articles
WHERE id = ANY($1::text[])
ORDER BY created_at
`

func (q *Queries) GetArticlesByIDs(ctx context.Context, ids []string) ([]Article, error) {
	rows, err := q.db.Query(ctx, getArticlesByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

const listRecentArticles = `
SELECT a.id, a.feed_id, a.title, a.content, a.link, a.source, a.published_at, a.created_at,
       an.sentiment_score, an.sentiment_label, an.countries, an.themes
FROM articles a
LEFT JOIN analyses an ON an.article_id = a.id
ORDER BY a.created_at DESC
LIMIT $1
`

type ListRecentArticlesRow struct {
	ID             string             `json:"id"`
	FeedID         pgtype.Int8        `json:"feed_id"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Link           string             `json:"link"`
	Source         string             `json:"source"`
	PublishedAt    pgtype.Timestamptz `json:"published_at"`
	CreatedAt      time.Time          `json:"created_at"`
	SentimentScore pgtype.Float8      `json:"sentiment_score"`
	SentimentLabel pgtype.Text        `json:"sentiment_label"`
	Countries      []string           `json:"countries"`
	Themes         []string           `json:"themes"`
}

func (q *Queries) ListRecentArticles(ctx context.Context, limit int32) ([]ListRecentArticlesRow, error) {
	rows, err := q.db.Query(ctx, listRecentArticles, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRecentArticlesRow
	for rows.Next() {
		var i ListRecentArticlesRow
		if err := rows.Scan(&i.ID, &i.FeedID, &i.Title, &i.Content, &i.Link, &i.Source, &i.PublishedAt, &i.CreatedAt,
			&i.SentimentScore, &i.SentimentLabel, &i.Countries, &i.Themes); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listArticleHeadsSince = `
SELECT id, title, source
FROM articles
WHERE created_at >= $1
ORDER BY created_at DESC
`

type ArticleHead struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

func (q *Queries) ListArticleHeadsSince(ctx context.Context, since time.Time) ([]ArticleHead, error) {
	rows, err := q.db.Query(ctx, listArticleHeadsSince, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ArticleHead
	for rows.Next() {
		var i ArticleHead
		if err := rows.Scan(&i.ID, &i.Title, &i.Source); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countArticles = `
SELECT count(*)
FROM articles
`

func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countArticles).Scan(&count)
	return count, err
}

const countArticlesSince = `
SELECT count(*)
FROM articles
WHERE created_at >= $1
`

func (q *Queries) CountArticlesSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countArticlesSince, since).Scan(&count)
	return count, err
}

func scanArticles(rows pgx.Rows) ([]Article, error) {
	var items []Article
	for rows.Next() {
		var i Article
		if err := rows.Scan(&i.ID, &i.FeedID, &i.Title, &i.Content, &i.Link, &i.Source, &i.PublishedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
