// Package report aggregates analyses into per-day evolutions and builds the
// periodic report that lands in S3.
package report

import (
	"sort"
	"time"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/tagging"
)

type SentimentDay struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

type ThemeDay struct {
	Date        string         `json:"date"`
	ThemeCounts map[string]int `json:"themeCounts"`
}

type ThemeTotal struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type Evolution struct {
	Periods            []string       `json:"periods"`
	SentimentEvolution []SentimentDay `json:"sentiment_evolution"`
	ThemeEvolution     []ThemeDay     `json:"theme_evolution"`
	TopThemes          []ThemeTotal   `json:"top_themes"`
}

const topThemesLimit = 30

const dayFormat = "2006-01-02"

// DateBuckets returns the last days dates, oldest first, ending today.
func DateBuckets(days int, today time.Time) []string {
	if days <= 0 {
		return nil
	}
	buckets := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		buckets = append(buckets, today.AddDate(0, 0, -i).Format(dayFormat))
	}
	return buckets
}

// BuildEvolution buckets analyses per day. Analyses outside the window are
// dropped; empty days stay present with zero counts so charts keep their
// x-axis.
func BuildEvolution(analyses []db.Analysis, days int, now time.Time) Evolution {
	periods := DateBuckets(days, now)

	sentimentByDay := make(map[string]*SentimentDay, len(periods))
	themesByDay := make(map[string]map[string]int, len(periods))
	for _, d := range periods {
		sentimentByDay[d] = &SentimentDay{Date: d}
		themesByDay[d] = make(map[string]int)
	}

	themeTotals := make(map[string]int)

	for _, a := range analyses {
		day := a.CreatedAt.Format(dayFormat)
		s, ok := sentimentByDay[day]
		if !ok {
			continue
		}

		switch a.SentimentLabel {
		case tagging.LabelPositive:
			s.Positive++
		case tagging.LabelNegative:
			s.Negative++
		default:
			s.Neutral++
		}

		for _, theme := range a.Themes {
			if theme == "" {
				continue
			}
			themesByDay[day][theme]++
			themeTotals[theme]++
		}
	}

	evolution := Evolution{
		Periods:            periods,
		SentimentEvolution: make([]SentimentDay, 0, len(periods)),
		ThemeEvolution:     make([]ThemeDay, 0, len(periods)),
		TopThemes:          rankThemes(themeTotals),
	}
	for _, d := range periods {
		evolution.SentimentEvolution = append(evolution.SentimentEvolution, *sentimentByDay[d])
		evolution.ThemeEvolution = append(evolution.ThemeEvolution, ThemeDay{
			Date:        d,
			ThemeCounts: themesByDay[d],
		})
	}

	return evolution
}

// rankThemes sorts by count descending, name ascending on ties, capped at
// topThemesLimit.
func rankThemes(totals map[string]int) []ThemeTotal {
	ranked := make([]ThemeTotal, 0, len(totals))
	for name, total := range totals {
		ranked = append(ranked, ThemeTotal{Name: name, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topThemesLimit {
		ranked = ranked[:topThemesLimit]
	}
	return ranked
}
