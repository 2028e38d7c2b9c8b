package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vigie-app/vigie/backend/internal/alerts"
	"github.com/vigie-app/vigie/backend/internal/corroborate"
	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/tagging"
	"github.com/vigie-app/vigie/backend/internal/timing"
	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/logger"
	"github.com/vigie-app/vigie/backend/pkg/relations"
)

// corroborationWindow bounds how far back corroboration candidates reach.
const corroborationWindow = 48 * time.Hour

// neutralPrior seeds the posterior for articles without any detected
// relation, where the engine gives no confidence to start from.
const neutralPrior = 0.5

// ProcessAnalyzeMessage runs a batch of stored articles through the relation
// engine, themes and sentiment tagging, corroboration and alerting, then
// upserts one analysis row per article.
func ProcessAnalyzeMessage(
	ctx context.Context,
	engine *relations.Engine,
	conn *pgxpool.Pool,
	msg string,
) (err error) {
	start := time.Now()

	data := new(QueueAnalyzeMsg)
	if err = json.Unmarshal([]byte(msg), &data); err != nil {
		return err
	}
	if len(data.ArticleIDs) == 0 {
		return nil
	}

	q := db.New(conn)

	rows, err := q.GetArticlesByIDs(ctx, data.ArticleIDs)
	if err != nil {
		return fmt.Errorf("failed to load articles: %w", err)
	}
	if len(rows) == 0 {
		logger.Warn("[Queue] No stored articles for analyze message", "requested", len(data.ArticleIDs))
		return nil
	}

	themes, err := loadThemes(ctx, q)
	if err != nil {
		return err
	}

	candidates, err := loadCandidates(ctx, q)
	if err != nil {
		return err
	}

	relationCount := 0
	for _, row := range rows {
		article := common.Article{
			ID:          row.ID,
			Title:       row.Title,
			Content:     row.Content,
			Link:        row.Link,
			Source:      row.Source,
			PublishedAt: row.PublishedAt.Time,
		}

		_, found, err := analyzeOne(ctx, q, engine, article, themes, candidates)
		if err != nil {
			return err
		}
		relationCount += len(found)
	}

	if err := timing.Record(ctx, conn, timing.StageAnalyze, len(rows), time.Since(start)); err != nil {
		logger.Warn("[Queue] Failed to record analyze timing", "err", err)
	}

	logger.Info("[Queue] Articles analyzed", "count", len(rows), "relations", relationCount)
	return nil
}

// AnalyzeArticleNow runs the full analysis pipeline for a single article
// outside the queue, for the synchronous analyze endpoint. The article must
// already be stored.
func AnalyzeArticleNow(
	ctx context.Context,
	engine *relations.Engine,
	conn *pgxpool.Pool,
	article common.Article,
) (db.Analysis, []common.Relation, error) {
	q := db.New(conn)

	themes, err := loadThemes(ctx, q)
	if err != nil {
		return db.Analysis{}, nil, err
	}
	candidates, err := loadCandidates(ctx, q)
	if err != nil {
		return db.Analysis{}, nil, err
	}

	return analyzeOne(ctx, q, engine, article, themes, candidates)
}

// analyzeOne feeds one article to the relation engine, tags it, weighs the
// corroboration by other sources and persists the resulting analysis row.
// Alert failures are logged but never fail the article.
func analyzeOne(
	ctx context.Context,
	q *db.Queries,
	engine *relations.Engine,
	article common.Article,
	themes []tagging.Theme,
	candidates []corroborate.Candidate,
) (db.Analysis, []common.Relation, error) {
	found := engine.AnalyzeArticle(article)
	tags := tagging.Analyze(article, themes)

	prior := articlePrior(found)
	corrob := corroborate.Evaluate(article, candidates, prior)

	id, err := gonanoid.New()
	if err != nil {
		return db.Analysis{}, nil, err
	}
	analysis, err := q.UpsertAnalysis(ctx, db.UpsertAnalysisParams{
		ID:                    id,
		ArticleID:             article.ID,
		Countries:             relations.ExtractCountries(article),
		Themes:                tags.Themes,
		SentimentScore:        tags.SentimentScore,
		SentimentLabel:        tags.SentimentLabel,
		RelationCount:         int32(len(found)),
		Confidence:            prior,
		CorroborationCount:    int32(corrob.Count),
		CorroborationStrength: corrob.Strength,
		Posterior:             corrob.Posterior,
	})
	if err != nil {
		return db.Analysis{}, nil, fmt.Errorf("failed to upsert analysis for article %s: %w", article.ID, err)
	}

	if _, err := alerts.Check(ctx, q, article); err != nil {
		logger.Warn("[Queue] Alert check failed", "article_id", article.ID, "err", err)
	}

	return analysis, found, nil
}

// articlePrior picks the article-level confidence the corroboration fusion
// starts from: the strongest relation confidence, or the neutral prior when
// the engine found no relation at all.
func articlePrior(found []common.Relation) float64 {
	if len(found) == 0 {
		return neutralPrior
	}
	prior := found[0].Confidence
	for _, rel := range found[1:] {
		if rel.Confidence > prior {
			prior = rel.Confidence
		}
	}
	return prior
}

func loadThemes(ctx context.Context, q *db.Queries) ([]tagging.Theme, error) {
	rows, err := q.ListEnabledThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load themes: %w", err)
	}
	themes := make([]tagging.Theme, 0, len(rows))
	for _, row := range rows {
		themes = append(themes, tagging.Theme{
			Name:     row.Name,
			Keywords: row.Keywords,
		})
	}
	return themes, nil
}

func loadCandidates(ctx context.Context, q *db.Queries) ([]corroborate.Candidate, error) {
	heads, err := q.ListArticleHeadsSince(ctx, time.Now().Add(-corroborationWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load corroboration candidates: %w", err)
	}
	candidates := make([]corroborate.Candidate, 0, len(heads))
	for _, head := range heads {
		candidates = append(candidates, corroborate.Candidate{
			ID:     head.ID,
			Title:  head.Title,
			Source: head.Source,
		})
	}
	return candidates, nil
}
