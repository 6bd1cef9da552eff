package ingest

import (
	"regexp"
	"strings"
)

// Keeps Hangul, Latin letters, digits, whitespace and the punctuation
// that carries meaning in financial text: sentence periods feed the
// sentence splitter, and rates read as "3.5%" or "(연)". Everything else
// (markup leftovers, control characters from PDF extraction) is dropped.
var nonContentPattern = regexp.MustCompile(`[^가-힣a-zA-Z0-9\s.,%()-]`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize cleans raw extracted text before classification and storage.
func Normalize(text string) string {
	cleaned := nonContentPattern.ReplaceAllString(text, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
