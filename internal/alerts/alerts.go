// Package alerts fires configured keyword alerts as articles come through
// the analysis pipeline. Triggers are persisted so cooldowns survive
// restarts and the trigger history feeds the API.
package alerts

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/logger"
	"github.com/vigie-app/vigie/backend/pkg/textmatch"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Check runs every enabled alert against the article and records a trigger
// for each match that is out of cooldown. A failing alert never blocks the
// others.
func Check(ctx context.Context, q *db.Queries, article common.Article) ([]db.AlertTrigger, error) {
	defs, err := q.ListEnabledAlerts(ctx)
	if err != nil {
		return nil, err
	}

	text := textmatch.Fold(article.Title + " " + article.Content)

	var triggered []db.AlertTrigger
	for _, def := range defs {
		matched := MatchKeywords(text, def.Keywords)
		if len(matched) == 0 {
			continue
		}

		last, err := q.LastAlertTriggerAt(ctx, def.ID)
		if err != nil {
			logger.Warn("[Alerts] Failed to read last trigger time", "alert_id", def.ID, "err", err)
			continue
		}
		if !CooldownExpired(last, def.CooldownSeconds, time.Now()) {
			logger.Debug("[Alerts] Alert in cooldown", "alert_id", def.ID, "article_id", article.ID)
			continue
		}

		trigger, err := q.InsertAlertTrigger(ctx, db.InsertAlertTriggerParams{
			AlertID:      def.ID,
			ArticleID:    article.ID,
			ArticleTitle: article.Title,
			Severity:     def.Severity,
			Matched:      matched,
		})
		if err != nil {
			logger.Error("[Alerts] Failed to record trigger", "alert_id", def.ID, "err", err)
			continue
		}

		if def.Severity == SeverityCritical {
			logger.Warn("[Alerts] Alert triggered", "alert", def.Name, "severity", def.Severity, "article", article.Title)
		} else {
			logger.Info("[Alerts] Alert triggered", "alert", def.Name, "severity", def.Severity, "article", article.Title)
		}

		triggered = append(triggered, trigger)
	}

	return triggered, nil
}

// MatchKeywords returns the keywords found in foldedText as whole words.
// Keywords may be multi-word phrases.
func MatchKeywords(foldedText string, keywords []string) []string {
	var matched []string
	for _, keyword := range keywords {
		if textmatch.ContainsWord(foldedText, textmatch.Fold(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// CooldownExpired reports whether an alert may fire again. A zero cooldown
// always fires, as does an alert that never triggered.
func CooldownExpired(last pgtype.Timestamptz, cooldownSeconds int32, now time.Time) bool {
	if cooldownSeconds == 0 {
		return true
	}
	if !last.Valid {
		return true
	}
	return now.Sub(last.Time) >= time.Duration(cooldownSeconds)*time.Second
}
