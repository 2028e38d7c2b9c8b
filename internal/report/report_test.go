package report

import (
	"reflect"
	"testing"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/tagging"
	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/relations"
)

func TestSentimentBreakdown(t *testing.T) {
	analyses := []db.Analysis{
		{SentimentLabel: tagging.LabelPositive},
		{SentimentLabel: tagging.LabelPositive},
		{SentimentLabel: tagging.LabelNegative},
		{SentimentLabel: tagging.LabelNeutral},
		{SentimentLabel: "inconnu"},
	}

	want := map[string]int{
		tagging.LabelPositive: 2,
		tagging.LabelNeutral:  2,
		tagging.LabelNegative: 1,
	}

	got := sentimentBreakdown(analyses)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sentimentBreakdown() = %#v, want %#v", got, want)
	}
}

func TestSentimentBreakdownEmpty(t *testing.T) {
	want := map[string]int{
		tagging.LabelPositive: 0,
		tagging.LabelNeutral:  0,
		tagging.LabelNegative: 0,
	}

	got := sentimentBreakdown(nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sentimentBreakdown(nil) = %#v, want %#v", got, want)
	}
}

func TestThemeTotals(t *testing.T) {
	analyses := []db.Analysis{
		{Themes: []string{"Diplomatie", "Conflits"}},
		{Themes: []string{"Conflits"}},
		{Themes: []string{""}},
		{Themes: nil},
	}

	want := []ThemeTotal{
		{Name: "Conflits", Total: 2},
		{Name: "Diplomatie", Total: 1},
	}

	got := themeTotals(analyses)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("themeTotals() = %#v, want %#v", got, want)
	}
}

func TestTopInfluence(t *testing.T) {
	engine := relations.NewEngine(relations.NewEngineParams{})
	engine.AnalyzeArticle(common.Article{
		ID:    "art-1",
		Title: "La France et l'Allemagne signent un accord de coopération",
	})
	engine.AnalyzeArticle(common.Article{
		ID:      "art-2",
		Title:   "Guerre entre la Russie et l'Ukraine",
		Content: "La crise s'aggrave, nouvelle menace sur la région.",
	})
	engine.AnalyzeArticle(common.Article{
		ID:      "art-3",
		Title:   "La France et la Russie renouent le contact",
		Content: "Un dialogue et un accord restent possibles malgré la tension.",
	})

	got := topInfluence(engine)

	// France and Russie share a second, weaker record, which drags their
	// mean below the countries with a single full-strength record.
	wantOrder := []string{"Allemagne", "Ukraine", "France", "Russie"}
	if len(got) != len(wantOrder) {
		t.Fatalf("topInfluence() = %#v, want %d entries", got, len(wantOrder))
	}
	for i, country := range wantOrder {
		if got[i].Country != country {
			t.Fatalf("topInfluence() order = %#v, want %#v", got, wantOrder)
		}
	}

	if got[0].Score != 1.0 || got[1].Score != 1.0 {
		t.Errorf("full-strength scores = %v, %v, want 1.0", got[0].Score, got[1].Score)
	}
	wantMean := (1.0 + 1.0/3.0) / 2
	if got[2].Score != wantMean || got[3].Score != wantMean {
		t.Errorf("shared-record scores = %v, %v, want %v", got[2].Score, got[3].Score, wantMean)
	}
}

func TestTopInfluenceEmptyEngine(t *testing.T) {
	engine := relations.NewEngine(relations.NewEngineParams{})

	if got := topInfluence(engine); len(got) != 0 {
		t.Errorf("topInfluence() = %#v, want empty", got)
	}
}
