// Package relations turns news articles into a weighted graph of bilateral
// country relations.
//
// Articles are scanned for a fixed country vocabulary; each co-mentioned
// pair is scored from cooperative and conflictual keyword counts and merged
// into a per-pair record held in memory. The engine owns all mutable state,
// serializes its own access, and exposes read-only views (snapshot,
// influence scores, network metrics) for the reporting layer. Nothing is
// persisted; the network lives and dies with the engine instance.
package relations

import (
	"sync"

	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/logger"
)

// Engine holds the relation network built from all analyzed articles.
type Engine struct {
	mu        sync.RWMutex
	records   map[string]*common.RelationRecord
	countries map[string]struct{}

	historyLimit int
}

// NewEngineParams contains configuration for creating an Engine.
type NewEngineParams struct {
	// HistoryLimit caps the evidence and evolution history kept per
	// record, retaining the most recent entries. 0 keeps everything.
	HistoryLimit int
}

// NewEngine creates an empty relation engine.
func NewEngine(params NewEngineParams) *Engine {
	return &Engine{
		records:      make(map[string]*common.RelationRecord),
		countries:    make(map[string]struct{}),
		historyLimit: params.HistoryLimit,
	}
}

// AnalyzeArticle runs one article through extraction, pair analysis and the
// network update, returning the relations found in this article only.
//
// The call never fails: a panic anywhere in the sequence is recovered here,
// logged, and reported as "no relations", with the network left exactly as
// it was. Safe for concurrent use.
func (e *Engine) AnalyzeArticle(article common.Article) (relations []common.Relation) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Relations] Article analysis failed", "article_id", article.ID, "panic", r)
			relations = nil
		}
	}()

	countries := ExtractCountries(article)
	if len(countries) < 2 {
		return nil
	}

	relations = detectBilateralRelations(countries, article)
	if len(relations) == 0 {
		return relations
	}

	e.updateNetwork(relations, article)

	logger.Debug("[Relations] Article analyzed",
		"article_id", article.ID,
		"countries", len(countries),
		"relations", len(relations),
	)
	return relations
}
