package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/storage"
	"github.com/vigie-app/vigie/backend/internal/tagging"
	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/logger"
	"github.com/vigie-app/vigie/backend/pkg/relations"
)

const (
	topInfluenceLimit = 10
	uploadTries       = 3
)

type CrisisZone struct {
	Countries []string            `json:"countries"`
	Strength  float64             `json:"strength"`
	Type      common.RelationType `json:"type"`
}

type InfluenceEntry struct {
	Country string  `json:"country"`
	Score   float64 `json:"score"`
}

type TriggerEntry struct {
	AlertID      string    `json:"alert_id"`
	ArticleTitle string    `json:"article_title"`
	TriggeredAt  time.Time `json:"triggered_at"`
}

type Report struct {
	GeneratedAt        time.Time             `json:"generated_at"`
	PeriodDays         int                   `json:"period_days"`
	TotalArticles      int64                 `json:"total_articles"`
	TotalAnalyses      int64                 `json:"total_analyses"`
	AvgSentiment       float64               `json:"avg_sentiment"`
	AvgConfidence      float64               `json:"avg_confidence"`
	SentimentBreakdown map[string]int        `json:"sentiment_breakdown"`
	TopThemes          []ThemeTotal          `json:"top_themes"`
	Network            common.NetworkMetrics `json:"network"`
	CrisisZones        []CrisisZone          `json:"crisis_zones"`
	TopInfluence       []InfluenceEntry      `json:"top_influence"`
	CriticalTriggers   []TriggerEntry        `json:"critical_triggers"`
}

// Build assembles the report for the past periodDays from storage and the
// relation engine.
func Build(
	ctx context.Context,
	conn *pgxpool.Pool,
	engine *relations.Engine,
	periodDays int,
) (Report, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -periodDays)
	q := db.New(conn)

	summary, err := q.GetAnalysisSummary(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("failed to summarize analyses: %w", err)
	}

	totalArticles, err := q.CountArticlesSince(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("failed to count articles: %w", err)
	}

	analyses, err := q.ListAnalysesSince(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list analyses: %w", err)
	}

	criticalTriggers, err := q.ListCriticalTriggersSince(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list critical triggers: %w", err)
	}

	report := Report{
		GeneratedAt:        now,
		PeriodDays:         periodDays,
		TotalArticles:      totalArticles,
		TotalAnalyses:      summary.Count,
		AvgSentiment:       summary.AvgSentiment,
		AvgConfidence:      summary.AvgConfidence,
		SentimentBreakdown: sentimentBreakdown(analyses),
		TopThemes:          themeTotals(analyses),
		Network:            engine.NetworkMetrics(),
	}

	for _, record := range engine.CrisisRelations() {
		report.CrisisZones = append(report.CrisisZones, CrisisZone{
			Countries: record.Countries,
			Strength:  record.CurrentStrength,
			Type:      record.Type,
		})
	}

	report.TopInfluence = topInfluence(engine)

	for _, trigger := range criticalTriggers {
		report.CriticalTriggers = append(report.CriticalTriggers, TriggerEntry{
			AlertID:      trigger.AlertID,
			ArticleTitle: trigger.ArticleTitle,
			TriggeredAt:  trigger.TriggeredAt,
		})
	}

	return report, nil
}

// Generate builds the report, uploads it to S3 and registers it. Returns the
// stored row and a presigned download link.
func Generate(
	ctx context.Context,
	conn *pgxpool.Pool,
	s3Client *awss3.Client,
	engine *relations.Engine,
	periodDays int,
) (db.Report, string, error) {
	report, err := Build(ctx, conn, engine, periodDays)
	if err != nil {
		return db.Report{}, "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return db.Report{}, "", fmt.Errorf("failed to marshal report: %w", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return db.Report{}, "", err
	}
	key := fmt.Sprintf("reports/report-%s-%s.json", report.GeneratedAt.Format("2006-01-02"), id)

	err = util.RetryErrWithContext(ctx, uploadTries, func(ctx context.Context) error {
		_, putErr := storage.PutJSON(ctx, s3Client, key, data)
		return putErr
	})
	if err != nil {
		return db.Report{}, "", err
	}

	q := db.New(conn)
	row, err := q.InsertReport(ctx, db.InsertReportParams{
		ID:         id,
		PeriodDays: int32(periodDays),
		FileKey:    key,
	})
	if err != nil {
		return db.Report{}, "", fmt.Errorf("failed to register report: %w", err)
	}

	link, err := storage.GenerateDownloadLink(ctx, s3Client, key)
	if err != nil {
		logger.Warn("[Report] Failed to presign download link", "key", key, "err", err)
		link = ""
	}

	logger.Info("[Report] Report generated", "id", row.ID, "period_days", periodDays, "key", key)
	return row, link, nil
}

func sentimentBreakdown(analyses []db.Analysis) map[string]int {
	breakdown := map[string]int{
		tagging.LabelPositive: 0,
		tagging.LabelNeutral:  0,
		tagging.LabelNegative: 0,
	}
	for _, a := range analyses {
		switch a.SentimentLabel {
		case tagging.LabelPositive:
			breakdown[tagging.LabelPositive]++
		case tagging.LabelNegative:
			breakdown[tagging.LabelNegative]++
		default:
			breakdown[tagging.LabelNeutral]++
		}
	}
	return breakdown
}

func themeTotals(analyses []db.Analysis) []ThemeTotal {
	totals := make(map[string]int)
	for _, a := range analyses {
		for _, theme := range a.Themes {
			if theme == "" {
				continue
			}
			totals[theme]++
		}
	}
	return rankThemes(totals)
}

func topInfluence(engine *relations.Engine) []InfluenceEntry {
	countries := engine.Countries()
	entries := make([]InfluenceEntry, 0, len(countries))
	for _, country := range countries {
		entries = append(entries, InfluenceEntry{
			Country: country,
			Score:   engine.InfluenceScore(country),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Country < entries[j].Country
	})
	if len(entries) > topInfluenceLimit {
		entries = entries[:topInfluenceLimit]
	}
	return entries
}
