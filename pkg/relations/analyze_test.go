package relations

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vigie-app/vigie/backend/pkg/common"
)

func TestClassifyStrength(t *testing.T) {
	tests := []struct {
		name     string
		strength float64
		want     common.RelationType
	}{
		{name: "full cooperative", strength: 1, want: common.RelationCooperative},
		{name: "just above outer threshold", strength: 0.31, want: common.RelationCooperative},
		{name: "outer threshold is tense", strength: 0.3, want: common.RelationTense},
		{name: "middle of tense band", strength: 0.2, want: common.RelationTense},
		{name: "just above inner threshold", strength: 0.11, want: common.RelationTense},
		{name: "inner threshold is neutral", strength: 0.1, want: common.RelationNeutral},
		{name: "zero", strength: 0, want: common.RelationNeutral},
		{name: "negative inner threshold is neutral", strength: -0.1, want: common.RelationNeutral},
		{name: "negative tense band", strength: -0.2, want: common.RelationTense},
		{name: "negative outer threshold is tense", strength: -0.3, want: common.RelationTense},
		{name: "just below negative outer threshold", strength: -0.31, want: common.RelationConflict},
		{name: "full conflict", strength: -1, want: common.RelationConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyStrength(tt.strength)
			if got != tt.want {
				t.Errorf("classifyStrength(%v) = %q, want %q", tt.strength, got, tt.want)
			}
		})
	}
}

func TestAnalyzeCountryPair(t *testing.T) {
	tests := []struct {
		name           string
		article        common.Article
		wantStrength   float64
		wantType       common.RelationType
		wantConfidence float64
	}{
		{
			name: "no polarity keywords",
			article: common.Article{
				ID:    "a1",
				Title: "La France et la Chine se rencontrent",
			},
			wantStrength:   0,
			wantType:       common.RelationNeutral,
			wantConfidence: 0,
		},
		{
			name: "three cooperative hits",
			article: common.Article{
				ID:      "a2",
				Title:   "La France et la Chine signent un accord historique",
				Content: "Une cooperation renforcée et un partenariat durable.",
			},
			wantStrength:   1,
			wantType:       common.RelationCooperative,
			wantConfidence: 0.3,
		},
		{
			name: "three conflict hits",
			article: common.Article{
				ID:      "a3",
				Title:   "La guerre s'intensifie",
				Content: "Nouvelle sanction annoncée après la crise.",
			},
			wantStrength:   -1,
			wantType:       common.RelationConflict,
			wantConfidence: 0.3,
		},
		{
			name: "balanced signal scores zero",
			article: common.Article{
				ID:      "a4",
				Title:   "Accord fragile",
				Content: "La menace demeure.",
			},
			wantStrength:   0,
			wantType:       common.RelationNeutral,
			wantConfidence: 0.2,
		},
		{
			name: "accented keyword matches folded form",
			article: common.Article{
				ID:    "a5",
				Title: "Une coopération inédite",
			},
			wantStrength:   1,
			wantType:       common.RelationCooperative,
			wantConfidence: 0.1,
		},
		{
			name: "confidence saturates at nine hits",
			article: common.Article{
				ID:      "a6",
				Title:   "Série d'accords",
				Content: strings.TrimSpace(strings.Repeat("accord ", 9)),
			},
			wantStrength:   1,
			wantType:       common.RelationCooperative,
			wantConfidence: 0.9,
		},
		{
			name: "mixed signal lands in tense band",
			article: common.Article{
				ID:      "a7",
				Title:   "Dialogue sous tension",
				Content: "Un accord et une alliance malgré la guerre et une sanction. La paix reste possible.",
			},
			// P=4 (dialogue, accord, alliance, paix), N=3 (tension, guerre, sanction).
			wantStrength:   1.0 / 7.0,
			wantType:       common.RelationTense,
			wantConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeCountryPair("France", "Chine", tt.article)

			if got.Strength != tt.wantStrength {
				t.Errorf("Strength = %v, want %v", got.Strength, tt.wantStrength)
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if !reflect.DeepEqual(got.Countries, []string{"France", "Chine"}) {
				t.Errorf("Countries = %#v, want pair in given order", got.Countries)
			}
			if got.Evidence.ArticleID != tt.article.ID {
				t.Errorf("Evidence.ArticleID = %q, want %q", got.Evidence.ArticleID, tt.article.ID)
			}
		})
	}
}

func TestTitleExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "short title unchanged",
			title: "Accord à Paris",
			want:  "Accord à Paris",
		},
		{
			name:  "long title cut at fifty characters",
			title: strings.Repeat("é", 60),
			want:  strings.Repeat("é", 50),
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titleExcerpt(tt.title)
			if got != tt.want {
				t.Errorf("titleExcerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectBilateralRelations(t *testing.T) {
	article := common.Article{
		ID:      "b1",
		Title:   "Sommet à trois",
		Content: "Un accord de cooperation est signé.",
	}

	t.Run("every pair among three countries", func(t *testing.T) {
		got := detectBilateralRelations([]string{"France", "Chine", "Russie"}, article)
		if len(got) != 3 {
			t.Fatalf("len(relations) = %d, want 3", len(got))
		}
		wantPairs := [][]string{
			{"France", "Chine"},
			{"France", "Russie"},
			{"Chine", "Russie"},
		}
		for i, rel := range got {
			if !reflect.DeepEqual(rel.Countries, wantPairs[i]) {
				t.Errorf("relations[%d].Countries = %#v, want %#v", i, rel.Countries, wantPairs[i])
			}
		}
	})

	t.Run("balanced signal drops the pair", func(t *testing.T) {
		balanced := common.Article{
			ID:      "b2",
			Title:   "Entre accord et conflit",
			Content: "Rien n'est décidé.",
		}
		got := detectBilateralRelations([]string{"France", "Chine"}, balanced)
		if len(got) != 0 {
			t.Errorf("len(relations) = %d, want 0", len(got))
		}
	})

	t.Run("no signal drops the pair", func(t *testing.T) {
		quiet := common.Article{
			ID:    "b3",
			Title: "Rencontre de routine",
		}
		got := detectBilateralRelations([]string{"France", "Chine"}, quiet)
		if len(got) != 0 {
			t.Errorf("len(relations) = %d, want 0", len(got))
		}
	})
}
