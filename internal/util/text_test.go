package util

import (
	"strings"
	"testing"
)

func TestSanitizePostgresText(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "empty input",
			value: "",
			want:  "",
		},
		{
			name:  "clean text unchanged",
			value: "Un accord a été signé",
			want:  "Un accord a été signé",
		},
		{
			name:  "nul bytes removed",
			value: "avant\x00après",
			want:  "avantaprès",
		},
		{
			name:  "invalid utf8 removed",
			value: "ok\xff\xfefin",
			want:  "okfin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePostgresText(tt.value)
			if got != tt.want {
				t.Errorf("SanitizePostgresText(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "empty input",
			value: "",
			want:  "",
		},
		{
			name:  "newlines and tabs collapsed",
			value: "  premier\n\n deuxième\ttroisième  ",
			want:  "premier deuxième troisième",
		},
		{
			name:  "single spaces untouched",
			value: "déjà propre",
			want:  "déjà propre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseWhitespace(tt.value)
			if got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		max   int
		want  string
	}{
		{
			name:  "shorter than limit",
			value: "bref",
			max:   10,
			want:  "bref",
		},
		{
			name:  "exactly at limit",
			value: "12345",
			max:   5,
			want:  "12345",
		},
		{
			name:  "truncated with ellipsis",
			value: "une phrase un peu longue",
			max:   10,
			want:  "une phrase…",
		},
		{
			name:  "multibyte runes counted not bytes",
			value: strings.Repeat("é", 8),
			max:   4,
			want:  strings.Repeat("é", 4) + "…",
		},
		{
			name:  "zero limit",
			value: "texte",
			max:   0,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.value, tt.max)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.value, tt.max, got, tt.want)
			}
		})
	}
}
