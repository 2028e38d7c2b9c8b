package relations

import (
	"reflect"
	"testing"

	"github.com/vigie-app/vigie/backend/pkg/common"
)

func TestExtractCountries(t *testing.T) {
	tests := []struct {
		name    string
		article common.Article
		want    []string
	}{
		{
			name:    "empty article",
			article: common.Article{},
			want:    []string(nil),
		},
		{
			name: "no country mentioned",
			article: common.Article{
				Title:   "Le marché obligataire se stabilise",
				Content: "Les taux repartent à la baisse en zone euro.",
			},
			want: []string(nil),
		},
		{
			name: "single country",
			article: common.Article{
				Title: "La France présente son budget",
			},
			want: []string{"France"},
		},
		{
			name: "vocabulary order independent of text order",
			article: common.Article{
				Title: "La Chine répond à la France",
			},
			want: []string{"France", "Chine"},
		},
		{
			name: "english alias resolves to canonical name",
			article: common.Article{
				Title: "China and the USA resume talks",
			},
			want: []string{"États-Unis", "Chine"},
		},
		{
			name: "accentless spelling matches",
			article: common.Article{
				Title: "Israel annonce un cessez-le-feu",
			},
			want: []string{"Israël"},
		},
		{
			name: "case insensitive",
			article: common.Article{
				Title: "RUSSIE : nouvelles mesures",
			},
			want: []string{"Russie"},
		},
		{
			name: "embedded mention is not a match",
			article: common.Article{
				Title: "Les Iraniens dans la rue",
			},
			want: []string(nil),
		},
		{
			name: "no duplicate for repeated mentions",
			article: common.Article{
				Title:   "France-Allemagne",
				Content: "La France et l'Allemagne, encore la France.",
			},
			want: []string{"France", "Allemagne"},
		},
		{
			name: "title and content both scanned",
			article: common.Article{
				Title:   "L'Ukraine au centre des discussions",
				Content: "La Turquie propose une médiation.",
			},
			want: []string{"Ukraine", "Turquie"},
		},
		{
			name: "hyphenated country",
			article: common.Article{
				Title: "Le Royaume-Uni quitte la table",
			},
			want: []string{"Royaume-Uni"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCountries(tt.article)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCountries() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOk bool
	}{
		{
			name:   "canonical name",
			in:     "France",
			want:   "France",
			wantOk: true,
		},
		{
			name:   "english alias",
			in:     "china",
			want:   "Chine",
			wantOk: true,
		},
		{
			name:   "uppercase accentless",
			in:     "ISRAEL",
			want:   "Israël",
			wantOk: true,
		},
		{
			name:   "accented input",
			in:     "États-Unis",
			want:   "États-Unis",
			wantOk: true,
		},
		{
			name:   "unknown country",
			in:     "Brésil",
			want:   "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCountry(tt.in)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("NormalizeCountry(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
