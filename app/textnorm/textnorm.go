// Package textnorm provides accent- and punctuation-insensitive string
// normalization used by organization matching and tokenization.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and removes combining marks,
// so "é" becomes "e" and "ü" becomes "u".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Norwegian letters do not decompose into base + mark, so they are
// transliterated explicitly before the generic accent stripping.
var translit = strings.NewReplacer("ø", "o", "æ", "ae", "å", "a")

// Normalize lowercases text, strips accents, replaces punctuation and
// symbols with spaces and collapses whitespace runs. The result is stable
// under re-application: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := strings.ToLower(text)
	t = translit.Replace(t)
	if stripped, _, err := transform.String(stripMarks, t); err == nil {
		t = stripped
	}

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			// Punctuation, symbols, control characters and whitespace
			// all become separators.
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into tokens.
func Tokenize(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	return strings.Split(norm, " ")
}
