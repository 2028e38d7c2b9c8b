// Package corroborate looks for the same story told by other sources and
// folds what it finds into a posterior confidence.
//
// Headline similarity uses a cheap trigram simhash, no model involved. Two
// titles from different outlets whose hashes agree on at least 85% of bits
// count as corroboration. The posterior combines the relation confidence
// with the corroboration strength by damped log-odds averaging.
package corroborate

import (
	"math"
	"math/bits"
	"sort"
	"strings"

	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/textmatch"
)

const (
	similarityThreshold = 0.85
	maxMatches          = 10

	// Flat source reliability until per-source scores exist.
	sourceReliability = 0.5
)

// Candidate is a recent article head loaded from storage.
type Candidate struct {
	ID     string
	Title  string
	Source string
}

type Match struct {
	ArticleID  string
	Title      string
	Source     string
	Similarity float64
}

type Result struct {
	Matches   []Match
	Count     int
	Strength  float64
	Posterior float64
}

// Evaluate finds corroborating candidates for the article and fuses the
// outcome with prior, the confidence the relation analysis produced.
func Evaluate(article common.Article, candidates []Candidate, prior float64) Result {
	matches := FindMatches(article, candidates)

	strength := 0.0
	for _, m := range matches {
		strength += m.Similarity
	}
	if len(matches) > 0 {
		strength /= float64(len(matches))
	}

	// An uncorroborated article contributes no likelihood: feeding a hard
	// zero through log-odds would collapse the posterior.
	likelihoods := []float64{sourceReliability}
	if len(matches) > 0 {
		likelihoods = []float64{strength, sourceReliability}
	}

	return Result{
		Matches:   matches,
		Count:     len(matches),
		Strength:  strength,
		Posterior: FuseLogOdds(prior, likelihoods),
	}
}

// FindMatches returns candidates from other sources whose titles are near
// duplicates of the article's, best first, capped at maxMatches.
func FindMatches(article common.Article, candidates []Candidate) []Match {
	target := Hash(article.Title)
	if target == 0 {
		return nil
	}

	var matches []Match
	for _, c := range candidates {
		if c.ID == article.ID || c.Source == article.Source {
			continue
		}
		h := Hash(c.Title)
		if h == 0 {
			continue
		}
		sim := Similarity(target, h)
		if sim >= similarityThreshold {
			matches = append(matches, Match{
				ArticleID:  c.ID,
				Title:      c.Title,
				Source:     c.Source,
				Similarity: sim,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}

// Hash builds a 64-bit simhash fingerprint from word trigrams of the folded
// text. Each trigram hash votes on every bit position, so unrelated texts
// land around 32 differing bits while near duplicates stay close. Texts
// shorter than three words hash to zero and never match.
func Hash(text string) uint64 {
	folded := textmatch.Fold(text)
	folded = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			return r
		}
		return ' '
	}, folded)

	words := strings.Fields(folded)
	if len(words) < 3 {
		return 0
	}

	var votes [64]int
	for i := 0; i+2 < len(words); i++ {
		trigram := words[i] + " " + words[i+1] + " " + words[i+2]
		var h uint64 = 5381
		for _, c := range trigram {
			h = ((h << 5) + h) + uint64(c)
		}
		for b := 0; b < 64; b++ {
			if h&(1<<b) != 0 {
				votes[b]++
			} else {
				votes[b]--
			}
		}
	}

	var fingerprint uint64
	for b := 0; b < 64; b++ {
		if votes[b] > 0 {
			fingerprint |= 1 << b
		}
	}
	return fingerprint
}

// Similarity is the fraction of bits two hashes agree on.
func Similarity(h1, h2 uint64) float64 {
	diff := bits.OnesCount64(h1 ^ h2)
	return float64(64-diff) / 64.0
}

// FuseLogOdds folds independent likelihoods into the prior by log-odds
// averaging, each additional likelihood damped by half.
func FuseLogOdds(prior float64, likelihoods []float64) float64 {
	if len(likelihoods) == 0 {
		return clamp01(prior)
	}

	lod := probToLogOdds(prior)
	for _, lk := range likelihoods {
		lod += probToLogOdds(lk) * 0.5
	}

	return logOddsToProb(lod / (1.0 + 0.5*float64(len(likelihoods))))
}

func probToLogOdds(p float64) float64 {
	p = clamp01(p)
	if p == 0 {
		return -1e6
	}
	if p == 1 {
		return 1e6
	}
	return math.Log(p / (1.0 - p))
}

func logOddsToProb(l float64) float64 {
	return clamp01(1.0 / (1.0 + math.Exp(-l)))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
