package textmatch

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "plain ascii lower-cased",
			in:   "Accord Historique",
			want: "accord historique",
		},
		{
			name: "french diacritics stripped",
			in:   "Coopération renforcée",
			want: "cooperation renforcee",
		},
		{
			name: "uppercase accents",
			in:   "États-Unis et Israël",
			want: "etats-unis et israel",
		},
		{
			name: "cedilla",
			in:   "Façon française",
			want: "facon francaise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(tt.in)
			if got != tt.want {
				t.Errorf("Fold() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		word string
		want bool
	}{
		{
			name: "empty word never matches",
			text: "some text",
			word: "",
			want: false,
		},
		{
			name: "exact word",
			text: "la france annonce un accord",
			word: "france",
			want: true,
		},
		{
			name: "word at start",
			text: "france et chine",
			word: "france",
			want: true,
		},
		{
			name: "word at end",
			text: "accord avec la chine",
			word: "chine",
			want: true,
		},
		{
			name: "substring of longer word rejected",
			text: "les iraniens manifestent",
			word: "iran",
			want: false,
		},
		{
			name: "prefix collision rejected",
			text: "la machine tourne",
			word: "chine",
			want: false,
		},
		{
			name: "hyphenated keyword",
			text: "le royaume-uni signe",
			word: "royaume-uni",
			want: true,
		},
		{
			name: "punctuation is a boundary",
			text: "accord: la russie accepte",
			word: "russie",
			want: true,
		},
		{
			name: "rejected then accepted later in text",
			text: "lukraine, enfin ukraine seule",
			word: "ukraine",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContainsWord(tt.text, tt.word)
			if got != tt.want {
				t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
			}
		})
	}
}

func TestCountWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		word string
		want int
	}{
		{
			name: "no occurrence",
			text: "rien a signaler",
			word: "accord",
			want: 0,
		},
		{
			name: "single occurrence",
			text: "un accord est signe",
			word: "accord",
			want: 1,
		},
		{
			name: "multiple occurrences",
			text: "accord sur un accord apres l'accord",
			word: "accord",
			want: 3,
		},
		{
			name: "embedded occurrence not counted",
			text: "le desaccord persiste malgre un accord",
			word: "accord",
			want: 1,
		},
		{
			name: "plural form does not match singular",
			text: "de nouvelles sanctions tombent",
			word: "sanction",
			want: 0,
		},
		{
			name: "adjacent punctuation",
			text: "guerre, guerre; guerre.",
			word: "guerre",
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountWord(tt.text, tt.word)
			if got != tt.want {
				t.Errorf("CountWord(%q, %q) = %d, want %d", tt.text, tt.word, got, tt.want)
			}
		})
	}
}
