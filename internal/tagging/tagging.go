// Package tagging classifies articles against configured themes and scores
// their overall tone from French sentiment vocabulary.
package tagging

import (
	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/textmatch"
)

const (
	LabelPositive = "positif"
	LabelNegative = "négatif"
	LabelNeutral  = "neutre"

	// Tone must clear this margin before an article leaves "neutre".
	labelThreshold = 0.2
)

// Folded forms, so "coopération" and "cooperation" both count.
var positiveTerms = []string{
	"accord", "paix", "progres", "succes", "cooperation", "dialogue",
}

var negativeTerms = []string{
	"conflit", "crise", "tension", "sanction", "violence", "protestation",
}

type Theme struct {
	Name     string
	Keywords []string
}

type Result struct {
	Themes         []string
	SentimentScore float64
	SentimentLabel string
}

// Analyze matches the article against themes and computes its sentiment.
// Theme keywords match as whole words, accents ignored.
func Analyze(article common.Article, themes []Theme) Result {
	text := textmatch.Fold(article.Title + " " + article.Content)

	var matched []string
	for _, theme := range themes {
		for _, keyword := range theme.Keywords {
			if textmatch.ContainsWord(text, textmatch.Fold(keyword)) {
				matched = append(matched, theme.Name)
				break
			}
		}
	}

	score := sentimentScore(text)

	return Result{
		Themes:         matched,
		SentimentScore: score,
		SentimentLabel: sentimentLabel(score),
	}
}

func sentimentScore(foldedText string) float64 {
	var positive, negative int
	for _, term := range positiveTerms {
		positive += textmatch.CountWord(foldedText, term)
	}
	for _, term := range negativeTerms {
		negative += textmatch.CountWord(foldedText, term)
	}

	total := positive + negative
	if total == 0 {
		return 0
	}
	return float64(positive-negative) / float64(total)
}

func sentimentLabel(score float64) string {
	switch {
	case score > labelThreshold:
		return LabelPositive
	case score < -labelThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
