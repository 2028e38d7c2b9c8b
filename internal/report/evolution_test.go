package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/tagging"
)

func TestDateBuckets(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		days int
		want []string
	}{
		{
			name: "single day",
			days: 1,
			want: []string{"2024-03-10"},
		},
		{
			name: "three days oldest first",
			days: 3,
			want: []string{"2024-03-08", "2024-03-09", "2024-03-10"},
		},
		{
			name: "crosses month boundary",
			days: 12,
			want: []string{
				"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02",
				"2024-03-03", "2024-03-04", "2024-03-05", "2024-03-06",
				"2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10",
			},
		},
		{
			name: "zero days",
			days: 0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateBuckets(tt.days, today)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DateBuckets(%d) = %#v, want %#v", tt.days, got, tt.want)
			}
		})
	}
}

func TestBuildEvolution(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 3, 10+offset, hour, 0, 0, 0, time.UTC)
	}

	analyses := []db.Analysis{
		{SentimentLabel: tagging.LabelPositive, Themes: []string{"Diplomatie"}, CreatedAt: day(-2, 9)},
		{SentimentLabel: tagging.LabelNegative, Themes: []string{"Conflits", "Diplomatie"}, CreatedAt: day(-2, 21)},
		{SentimentLabel: tagging.LabelNeutral, Themes: nil, CreatedAt: day(0, 8)},
		{SentimentLabel: tagging.LabelNegative, Themes: []string{"Conflits"}, CreatedAt: day(0, 12)},
		// Unknown labels count as neutral, blank themes are skipped.
		{SentimentLabel: "", Themes: []string{""}, CreatedAt: day(0, 13)},
		// Outside the window, must be ignored entirely.
		{SentimentLabel: tagging.LabelPositive, Themes: []string{"Énergie"}, CreatedAt: day(-5, 10)},
	}

	got := BuildEvolution(analyses, 3, now)

	wantPeriods := []string{"2024-03-08", "2024-03-09", "2024-03-10"}
	if !reflect.DeepEqual(got.Periods, wantPeriods) {
		t.Errorf("Periods = %#v, want %#v", got.Periods, wantPeriods)
	}

	wantSentiment := []SentimentDay{
		{Date: "2024-03-08", Positive: 1, Negative: 1},
		{Date: "2024-03-09"},
		{Date: "2024-03-10", Neutral: 2, Negative: 1},
	}
	if !reflect.DeepEqual(got.SentimentEvolution, wantSentiment) {
		t.Errorf("SentimentEvolution = %#v, want %#v", got.SentimentEvolution, wantSentiment)
	}

	wantThemes := []ThemeDay{
		{Date: "2024-03-08", ThemeCounts: map[string]int{"Diplomatie": 2, "Conflits": 1}},
		{Date: "2024-03-09", ThemeCounts: map[string]int{}},
		{Date: "2024-03-10", ThemeCounts: map[string]int{"Conflits": 1}},
	}
	if !reflect.DeepEqual(got.ThemeEvolution, wantThemes) {
		t.Errorf("ThemeEvolution = %#v, want %#v", got.ThemeEvolution, wantThemes)
	}

	wantTop := []ThemeTotal{
		{Name: "Conflits", Total: 2},
		{Name: "Diplomatie", Total: 2},
	}
	if !reflect.DeepEqual(got.TopThemes, wantTop) {
		t.Errorf("TopThemes = %#v, want %#v", got.TopThemes, wantTop)
	}
}

func TestBuildEvolutionEmpty(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	got := BuildEvolution(nil, 2, now)

	if len(got.SentimentEvolution) != 2 || len(got.ThemeEvolution) != 2 {
		t.Fatalf("expected 2 empty days, got %#v", got)
	}
	if got.SentimentEvolution[0] != (SentimentDay{Date: "2024-03-09"}) {
		t.Errorf("first day = %#v, want zero counts", got.SentimentEvolution[0])
	}
	if len(got.TopThemes) != 0 {
		t.Errorf("TopThemes = %#v, want empty", got.TopThemes)
	}
}

func TestRankThemes(t *testing.T) {
	totals := map[string]int{
		"Conflits":   5,
		"Diplomatie": 5,
		"Économie":   2,
		"Énergie":    9,
	}

	want := []ThemeTotal{
		{Name: "Énergie", Total: 9},
		{Name: "Conflits", Total: 5},
		{Name: "Diplomatie", Total: 5},
		{Name: "Économie", Total: 2},
	}

	got := rankThemes(totals)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rankThemes() = %#v, want %#v", got, want)
	}
}

func TestRankThemesCap(t *testing.T) {
	totals := make(map[string]int)
	for i := 0; i < topThemesLimit+8; i++ {
		totals[string(rune('a'+i))] = i + 1
	}

	got := rankThemes(totals)
	if len(got) != topThemesLimit {
		t.Fatalf("len(rankThemes()) = %d, want %d", len(got), topThemesLimit)
	}
	if got[0].Total != topThemesLimit+8 {
		t.Errorf("top entry = %#v, want highest count first", got[0])
	}
}
