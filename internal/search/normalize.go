// Package search ranks catalog tables against a free-text query.
//
// Matching is deliberately simple and deterministic: text is
// decomposed to NFD, combining marks are stripped and the result is
// lowercased, so "Prévision" and "prevision" produce the same token.
// A query token matches a document token by prefix, which approximates
// the lexeme matching of PostgreSQL full-text search without tying the
// result to a language-specific stemmer. Scores are recomputed from
// current metadata on every call; there is no persisted index.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics and lowercases s.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		// Transform failures leave the input usable as is.
		folded = s
	}
	return strings.ToLower(folded)
}

// Tokenize splits s into folded tokens on any rune that is neither a
// letter nor a digit. Whitespace-only input yields no tokens.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
