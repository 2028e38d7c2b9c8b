package relations

// countryEntry maps one canonical country name to the folded spellings
// that count as a mention. Aliases must be written in folded form
// (lower-case, no diacritics), since article text is folded before
// matching.
type countryEntry struct {
	name    string
	aliases []string
}

// countryVocabulary is the fixed set of countries the engine tracks.
// Extraction results are reported in this order.
var countryVocabulary = []countryEntry{
	{name: "France", aliases: []string{"france"}},
	{name: "Allemagne", aliases: []string{"allemagne", "germany"}},
	{name: "États-Unis", aliases: []string{"etats-unis", "usa", "united states"}},
	{name: "Chine", aliases: []string{"chine", "china"}},
	{name: "Russie", aliases: []string{"russie", "russia"}},
	{name: "Royaume-Uni", aliases: []string{"royaume-uni", "uk", "grande-bretagne", "united kingdom"}},
	{name: "Ukraine", aliases: []string{"ukraine"}},
	{name: "Israël", aliases: []string{"israel"}},
	{name: "Palestine", aliases: []string{"palestine", "gaza"}},
	{name: "Iran", aliases: []string{"iran"}},
	{name: "Turquie", aliases: []string{"turquie", "turkey"}},
	{name: "Inde", aliases: []string{"inde", "india"}},
	{name: "Japon", aliases: []string{"japon", "japan"}},
	{name: "Syrie", aliases: []string{"syrie", "syria"}},
}

// Polarity vocabularies, in folded form. The two sets are disjoint so a
// single occurrence can never count twice.
var (
	cooperativeTerms = []string{
		"cooperation",
		"accord",
		"partenariat",
		"paix",
		"dialogue",
		"alliance",
		"progres",
		"succes",
	}

	conflictTerms = []string{
		"conflit",
		"guerre",
		"tension",
		"sanction",
		"crise",
		"menace",
		"violence",
		"protestation",
	}
)
