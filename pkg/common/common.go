package common

import "time"

// RelationType classifies the tone of a bilateral relation.
type RelationType string

const (
	RelationCooperative RelationType = "cooperative"
	RelationTense       RelationType = "tense"
	RelationConflict    RelationType = "conflict"
	RelationNeutral     RelationType = "neutral"
)

// Article is a single news item fed into the analysis engine.
//
// Only ID, Title and Content matter to the engine; all three may be empty
// and are treated as empty strings. The remaining fields carry ingestion
// metadata (where the article came from and when) used by the surrounding
// pipeline and reports.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Link        string    `json:"link,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// Evidence links a relation back to the article it was derived from.
// The excerpt is the first 50 characters of the article title. Evidence
// entries are immutable once created and only ever appended to a record.
type Evidence struct {
	ArticleID string `json:"article_id"`
	Excerpt   string `json:"excerpt"`
}

// Relation is the result of analyzing one country pair within one article.
//
// Countries holds the two country names in detection order. Strength is a
// signed score in [-1,1]: positive means cooperative signal, negative means
// conflictual signal. Confidence in [0,0.9] reflects keyword volume only,
// not directional certainty.
type Relation struct {
	Countries  []string     `json:"countries"`
	Strength   float64      `json:"strength"`
	Type       RelationType `json:"type"`
	Confidence float64      `json:"confidence"`
	Evidence   Evidence     `json:"evidence"`
}

// StrengthPoint is one entry in a record's strength history.
type StrengthPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Strength  float64   `json:"strength"`
}

// RelationRecord is the long-lived state for one unordered country pair.
//
// A record accumulates observations across articles:
//   - CurrentStrength is a two-point running average over observations,
//     so each new article halves the weight of everything before it.
//   - Type and Confidence are fixed when the record is first created.
//   - Evidence and Evolution grow by exactly one entry per observation
//     and always have equal length.
type RelationRecord struct {
	Countries       []string        `json:"countries"`
	CurrentStrength float64         `json:"current_strength"`
	Type            RelationType    `json:"type"`
	Confidence      float64         `json:"confidence"`
	Evidence        []Evidence      `json:"evidence"`
	Evolution       []StrengthPoint `json:"evolution"`
	LastUpdated     time.Time       `json:"last_updated"`
}

// NetworkMetrics is a point-in-time summary of the relation network.
type NetworkMetrics struct {
	TotalCountries int       `json:"total_countries"`
	TotalRelations int       `json:"total_relations"`
	AvgStrength    float64   `json:"avg_strength"`
	LastAnalysis   time.Time `json:"last_analysis"`
}
