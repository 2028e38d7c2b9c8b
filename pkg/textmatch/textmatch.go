// Package textmatch provides whole-word keyword matching over folded text.
//
// Matching is rune-aware: a candidate occurrence only counts when the
// characters adjacent to it are not letters or digits, so "Iran" does not
// match inside "Irangate". Callers are expected to Fold both the text and
// the keywords once before matching, which lower-cases and strips
// diacritics ("Coopération" and "cooperation" become the same token).
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips diacritical marks, returning a canonical
// form suitable for ContainsWord and CountWord.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// ContainsWord reports whether word occurs in text as a whole word.
// Both arguments are compared byte-for-byte; fold them first.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		if isBoundary(text, start, end) {
			return true
		}
		offset = start + 1
	}
}

// CountWord returns the number of non-overlapping whole-word occurrences
// of word in text. Both arguments are compared byte-for-byte; fold them
// first.
func CountWord(text, word string) int {
	if word == "" {
		return 0
	}
	count := 0
	offset := 0
	for {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return count
		}
		start := offset + idx
		end := start + len(word)
		if isBoundary(text, start, end) {
			count++
			offset = end
		} else {
			offset = start + 1
		}
	}
}

func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordChar(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordChar(r) {
			return false
		}
	}
	return true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
