package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Theme struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type Feed struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Url           string             `json:"url"`
	ThemeID       pgtype.Int8        `json:"theme_id"`
	Enabled       bool               `json:"enabled"`
	FullContent   bool               `json:"full_content"`
	LastFetchedAt pgtype.Timestamptz `json:"last_fetched_at"`
	CreatedAt     time.Time          `json:"created_at"`
}

type Article struct {
	ID          string             `json:"id"`
	FeedID      pgtype.Int8        `json:"feed_id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Link        string             `json:"link"`
	Source      string             `json:"source"`
	PublishedAt pgtype.Timestamptz `json:"published_at"`
	CreatedAt   time.Time          `json:"created_at"`
}

type Analysis struct {
	ID                    string    `json:"id"`
	ArticleID             string    `json:"article_id"`
	Countries             []string  `json:"countries"`
	Themes                []string  `json:"themes"`
	SentimentScore        float64   `json:"sentiment_score"`
	SentimentLabel        string    `json:"sentiment_label"`
	RelationCount         int32     `json:"relation_count"`
	Confidence            float64   `json:"confidence"`
	CorroborationCount    int32     `json:"corroboration_count"`
	CorroborationStrength float64   `json:"corroboration_strength"`
	Posterior             float64   `json:"posterior"`
	CreatedAt             time.Time `json:"created_at"`
}

type Alert struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Keywords        []string  `json:"keywords"`
	Severity        string    `json:"severity"`
	CooldownSeconds int32     `json:"cooldown_seconds"`
	Enabled         bool      `json:"enabled"`
	CreatedAt       time.Time `json:"created_at"`
}

type AlertTrigger struct {
	ID           int64     `json:"id"`
	AlertID      string    `json:"alert_id"`
	ArticleID    string    `json:"article_id"`
	ArticleTitle string    `json:"article_title"`
	Severity     string    `json:"severity"`
	Matched      []string  `json:"matched"`
	TriggeredAt  time.Time `json:"triggered_at"`
}

type Report struct {
	ID          string    `json:"id"`
	PeriodDays  int32     `json:"period_days"`
	FileKey     string    `json:"file_key"`
	GeneratedAt time.Time `json:"generated_at"`
}

type ProcessTiming struct {
	ID         int64     `json:"id"`
	Stage      string    `json:"stage"`
	ItemCount  int32     `json:"item_count"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
