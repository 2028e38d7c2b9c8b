package db

import (
	"context"
	"time"
)

const upsertAnalysis = `
INSERT INTO analyses (id, article_id, countries, themes, sentiment_score, sentiment_label,
                      relation_count, confidence, corroboration_count, corroboration_strength, posterior)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (article_id) DO UPDATE
SET countries              = EXCLUDED.countries,
    themes                 = EXCLUDED.themes,
    sentiment_score        = EXCLUDED.sentiment_score,
    sentiment_label        = EXCLUDED.sentiment_label,
    relation_count         = EXCLUDED.relation_count,
    confidence             = EXCLUDED.confidence,
    corroboration_count    = EXCLUDED.corroboration_count,
    corroboration_strength = EXCLUDED.corroboration_strength,
    posterior              = EXCLUDED.posterior,
    created_at             = now()
RETURNING id, article_id, countries, themes, sentiment_score, sentiment_label,
          relation_count, confidence, corroboration_count, corroboration_strength, posterior, created_at
`

type UpsertAnalysisParams struct {
	ID                    string
	ArticleID             string
	Countries             []string
	Themes                []string
	SentimentScore        float64
	SentimentLabel        string
	RelationCount         int32
	Confidence            float64
	CorroborationCount    int32
	CorroborationStrength float64
	Posterior             float64
}

func (q *Queries) UpsertAnalysis(ctx context.Context, arg UpsertAnalysisParams) (Analysis, error) {
	row := q.db.QueryRow(ctx, upsertAnalysis,
		arg.ID, arg.ArticleID, arg.Countries, arg.Themes, arg.SentimentScore, arg.SentimentLabel,
		arg.RelationCount, arg.Confidence, arg.CorroborationCount, arg.CorroborationStrength, arg.Posterior)
	var i Analysis
	err := row.Scan(&i.ID, &i.ArticleID, &i.Countries, &i.Themes, &i.SentimentScore, &i.SentimentLabel,
		&i.RelationCount, &i.Confidence, &i.CorroborationCount, &i.CorroborationStrength, &i.Posterior, &i.CreatedAt)
	return i, err
}

const listAnalysesSince = `
SELECT id, article_id, countries, themes, sentiment_score, sentiment_label,
       relation_count, confidence, corroboration_count, corroboration_strength, posterior, created_at
FROM analyses
WHERE created_at >= $1
ORDER BY created_at
`

func (q *Queries) ListAnalysesSince(ctx context.Context, since time.Time) ([]Analysis, error) {
	rows, err := q.db.Query(ctx, listAnalysesSince, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Analysis
	for rows.Next() {
		var i Analysis
		if err := rows.Scan(&i.ID, &i.ArticleID, &i.Countries, &i.Themes, &i.SentimentScore, &i.SentimentLabel,
			&i.RelationCount, &i.Confidence, &i.CorroborationCount, &i.CorroborationStrength, &i.Posterior, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getAnalysisSummary = `
SELECT count(*),
       coalesce(avg(sentiment_score), 0),
       coalesce(avg(confidence), 0)
FROM analyses
WHERE created_at >= $1
`

type AnalysisSummaryRow struct {
	Count         int64   `json:"count"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	AvgConfidence float64 `json:"avg_confidence"`
}

func (q *Queries) GetAnalysisSummary(ctx context.Context, since time.Time) (AnalysisSummaryRow, error) {
	row := q.db.QueryRow(ctx, getAnalysisSummary, since)
	var i AnalysisSummaryRow
	err := row.Scan(&i.Count, &i.AvgSentiment, &i.AvgConfidence)
	return i, err
}

const countAnalyses = `
SELECT count(*)
FROM analyses
`

func (q *Queries) CountAnalyses(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countAnalyses).Scan(&count)
	return count, err
}
