package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const createTheme = `
INSERT INTO themes (name, keywords, enabled)
VALUES ($1, $2, $3)
RETURNING id, name, keywords, enabled, created_at
`

type CreateThemeParams struct {
	Name     string
	Keywords []string
	Enabled  bool
}

func (q *Queries) CreateTheme(ctx context.Context, arg CreateThemeParams) (Theme, error) {
	row := q.db.QueryRow(ctx, createTheme, arg.Name, arg.Keywords, arg.Enabled)
	var i Theme
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Enabled, &i.CreatedAt)
	return i, err
}

const getTheme = `
SELECT id, name, keywords, enabled, created_at
FROM themes
WHERE id = $1
`

func (q *Queries) GetTheme(ctx context.Context, id int64) (Theme, error) {
	row := q.db.QueryRow(ctx, getTheme, id)
	var i Theme
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Enabled, &i.CreatedAt)
	return i, err
}

const listThemes = `
SELECT id, name, keywords, enabled, created_at
FROM themes
ORDER BY id
`

func (q *Queries) ListThemes(ctx context.Context) ([]Theme, error) {
	rows, err := q.db.Query(ctx, listThemes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanThemes(rows)
}

const listEnabledThemes = `
SELECT id, name, keywords, enabled, created_at
FROM themes
WHERE enabled = TRUE
ORDER BY id
`

func (q *Queries) ListEnabledThemes(ctx context.Context) ([]Theme, error) {
	rows, err := q.db.Query(ctx, listEnabledThemes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanThemes(rows)
}

const updateTheme = `
UPDATE themes
SET name = $2, keywords = $3, enabled = $4
WHERE id = $1
RETURNING id, name, keywords, enabled, created_at
`

type UpdateThemeParams struct {
	ID       int64
	Name     string
	Keywords []string
	Enabled  bool
}

func (q *Queries) UpdateTheme(ctx context.Context, arg UpdateThemeParams) (Theme, error) {
	row := q.db.QueryRow(ctx, updateTheme, arg.ID, arg.Name, arg.Keywords, arg.Enabled)
	var i Theme
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Enabled, &i.CreatedAt)
	return i, err
}

const deleteTheme = `
DELETE FROM themes
WHERE id = $1
`

func (q *Queries) DeleteTheme(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteTheme, id)
	return err
}

func scanThemes(rows pgx.Rows) ([]Theme, error) {
	var items []Theme
	for rows.Next() {
		var i Theme
		if err := rows.Scan(&i.ID, &i.Name, &i.Keywords, &i.Enabled, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
