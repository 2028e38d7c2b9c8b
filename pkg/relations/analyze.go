package relations

import (
	"math"

	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/textmatch"
)

const (
	// Strength thresholds for classification. A strength above the outer
	// threshold is cooperative (below its negation, conflict); between the
	// inner and outer threshold the relation is tense; anything else is
	// neutral. Both boundaries are exclusive.
	outerThreshold = 0.3
	innerThreshold = 0.1

	// Confidence grows with keyword volume and saturates at 0.9 once ten
	// or more polarity keywords were seen.
	confidenceDivisor = 10
	confidenceCap     = 0.9

	excerptRunes = 50
)

// detectBilateralRelations scores every unordered pair among the detected
// countries against the article text. Pairs without polarity signal, or
// with exactly balanced signal, score a strength of zero and are dropped.
func detectBilateralRelations(countries []string, article common.Article) []common.Relation {
	var relations []common.Relation
	for i := 0; i < len(countries); i++ {
		for j := i + 1; j < len(countries); j++ {
			relation := analyzeCountryPair(countries[i], countries[j], article)
			if relation.Strength == 0 {
				continue
			}
			relations = append(relations, relation)
		}
	}
	return relations
}

// analyzeCountryPair scores the relation between two countries based on
// the polarity keywords in the article. Pure function of its inputs.
func analyzeCountryPair(a, b string, article common.Article) common.Relation {
	text := textmatch.Fold(article.Title + " " + article.Content)

	positive := 0
	for _, term := range cooperativeTerms {
		positive += textmatch.CountWord(text, term)
	}
	negative := 0
	for _, term := range conflictTerms {
		negative += textmatch.CountWord(text, term)
	}

	total := positive + negative
	strength := 0.0
	if total > 0 {
		strength = clamp(float64(positive-negative)/float64(total), -1, 1)
	}

	confidence := math.Min(float64(total)/confidenceDivisor, confidenceCap)

	return common.Relation{
		Countries:  []string{a, b},
		Strength:   strength,
		Type:       classifyStrength(strength),
		Confidence: confidence,
		Evidence: common.Evidence{
			ArticleID: article.ID,
			Excerpt:   titleExcerpt(article.Title),
		},
	}
}

func classifyStrength(s float64) common.RelationType {
	switch {
	case s > outerThreshold:
		return common.RelationCooperative
	case s < -outerThreshold:
		return common.RelationConflict
	case math.Abs(s) > innerThreshold:
		return common.RelationTense
	default:
		return common.RelationNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func titleExcerpt(title string) string {
	r := []rune(title)
	if len(r) <= excerptRunes {
		return title
	}
	return string(r[:excerptRunes])
}
