package relations

import (
	"github.com/vigie-app/vigie/backend/pkg/common"
	"github.com/vigie-app/vigie/backend/pkg/textmatch"
)

// ExtractCountries returns the canonical names of all countries mentioned
// in the article, in vocabulary order. Matching is case-insensitive,
// diacritic-insensitive and whole-word, over title and content combined.
// Each vocabulary entry is reported at most once.
func ExtractCountries(article common.Article) []string {
	text := textmatch.Fold(article.Title + " " + article.Content)

	var countries []string
	for _, entry := range countryVocabulary {
		for _, alias := range entry.aliases {
			if textmatch.ContainsWord(text, alias) {
				countries = append(countries, entry.name)
				break
			}
		}
	}
	return countries
}

// NormalizeCountry resolves a user-supplied spelling to its canonical
// vocabulary name. It accepts any alias in any casing ("china", "Chine",
// "ISRAEL") and reports whether the name is part of the vocabulary.
func NormalizeCountry(name string) (string, bool) {
	folded := textmatch.Fold(name)
	for _, entry := range countryVocabulary {
		for _, alias := range entry.aliases {
			if alias == folded {
				return entry.name, true
			}
		}
	}
	return "", false
}
