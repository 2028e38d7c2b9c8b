package corroborate

import (
	"math"
	"testing"

	"github.com/vigie-app/vigie/backend/pkg/common"
)

func TestHash(t *testing.T) {
	title := "La France et la Chine signent un accord commercial"

	if Hash(title) != Hash(title) {
		t.Error("hash should be deterministic")
	}
	if Hash(title) == 0 {
		t.Error("hash of a real title should not be zero")
	}
	if Hash("") != 0 {
		t.Error("hash of empty text should be zero")
	}
	if Hash("deux mots") != 0 {
		t.Error("texts under three words should hash to zero")
	}
	if Hash(title) != Hash("La FRANCE et la CHINE signent un accord commercial") {
		t.Error("hash should ignore case")
	}
}

func TestSimilarity(t *testing.T) {
	h := Hash("La France et la Chine signent un accord commercial majeur")

	if got := Similarity(h, h); got != 1.0 {
		t.Errorf("Similarity(h, h) = %v, want 1.0", got)
	}

	other := Hash("Le championnat de football reprend ce soir après la trêve hivernale")
	if got := Similarity(h, other); got >= similarityThreshold {
		t.Errorf("unrelated titles too similar: %v", got)
	}
}

func TestFindMatches(t *testing.T) {
	article := common.Article{
		ID:     "art-1",
		Title:  "La France et la Chine signent un accord commercial majeur",
		Source: "France Info",
	}

	candidates := []Candidate{
		{ID: "art-1", Title: article.Title, Source: "France Info"},
		{ID: "art-2", Title: article.Title, Source: "France Info"},
		{ID: "art-3", Title: article.Title, Source: "RFI"},
		{ID: "art-4", Title: "Le championnat de football reprend ce soir après la trêve", Source: "RFI"},
		{ID: "art-5", Title: "", Source: "France 24"},
	}

	matches := FindMatches(article, candidates)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %#v", len(matches), matches)
	}
	if matches[0].ArticleID != "art-3" {
		t.Errorf("expected match art-3, got %s", matches[0].ArticleID)
	}
	if matches[0].Similarity != 1.0 {
		t.Errorf("identical title should score 1.0, got %v", matches[0].Similarity)
	}
}

func TestFindMatchesEmptyTitle(t *testing.T) {
	article := common.Article{ID: "art-1", Title: "", Source: "France Info"}
	candidates := []Candidate{{ID: "art-2", Title: "Un accord commercial entre voisins", Source: "RFI"}}

	if got := FindMatches(article, candidates); got != nil {
		t.Errorf("expected no matches for empty title, got %#v", got)
	}
}

func TestFuseLogOdds(t *testing.T) {
	if got := FuseLogOdds(0.5, nil); got != 0.5 {
		t.Errorf("FuseLogOdds(0.5, nil) = %v, want 0.5", got)
	}
	if got := FuseLogOdds(1.3, nil); got != 1.0 {
		t.Errorf("prior should be clamped, got %v", got)
	}
	if got := FuseLogOdds(1.0, []float64{0.5}); got != 1.0 {
		t.Errorf("certain prior should stay certain, got %v", got)
	}
	if got := FuseLogOdds(0.0, []float64{0.5}); got != 0.0 {
		t.Errorf("impossible prior should stay impossible, got %v", got)
	}

	// A neutral likelihood only dampens the prior toward 0.5.
	damped := FuseLogOdds(0.8, []float64{0.5})
	if damped <= 0.5 || damped >= 0.8 {
		t.Errorf("expected damped posterior in (0.5, 0.8), got %v", damped)
	}

	// Strong corroboration pushes the posterior up, weak pulls it down.
	up := FuseLogOdds(0.5, []float64{0.9, 0.5})
	if up <= 0.5 {
		t.Errorf("expected posterior above prior, got %v", up)
	}
	down := FuseLogOdds(0.5, []float64{0.1, 0.5})
	if down >= 0.5 {
		t.Errorf("expected posterior below prior, got %v", down)
	}
	if math.Abs((up-0.5)-(0.5-down)) > 1e-12 {
		t.Errorf("symmetric likelihoods should move the posterior symmetrically: %v vs %v", up, down)
	}
}

func TestEvaluate(t *testing.T) {
	article := common.Article{
		ID:     "art-1",
		Title:  "La France et la Chine signent un accord commercial majeur",
		Source: "France Info",
	}
	confirming := []Candidate{
		{ID: "art-3", Title: article.Title, Source: "RFI"},
	}

	got := Evaluate(article, confirming, 0.3)
	if got.Count != 1 {
		t.Fatalf("expected 1 corroboration, got %d", got.Count)
	}
	if got.Strength != 1.0 {
		t.Errorf("expected strength 1.0, got %v", got.Strength)
	}
	if got.Posterior <= 0.3 {
		t.Errorf("corroboration should raise the posterior above the prior, got %v", got.Posterior)
	}

	alone := Evaluate(article, nil, 0.3)
	if alone.Count != 0 || alone.Strength != 0 {
		t.Errorf("expected zero corroboration, got %#v", alone)
	}
	if alone.Posterior <= 0 || alone.Posterior >= 0.5 {
		t.Errorf("uncorroborated posterior should sit between 0 and 0.5, got %v", alone.Posterior)
	}
	if alone.Posterior <= 0.3 {
		// Damping pulls toward 0.5, never below the prior here.
		t.Errorf("damped posterior should not drop below the prior, got %v", alone.Posterior)
	}
}
