package utils

import "strings"

// sentence-ending runes covering Korean and Latin prose
var sentenceEnders = ".!?。"

// FirstSentences returns the first max sentences of text, joined with a
// single space. Text with fewer sentences is returned as-is. The split is
// punctuation based, which is adequate for the brochure-style documents in
// the store.
func FirstSentences(text string, max int) string {
	if max <= 0 {
		return ""
	}

	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if strings.ContainsRune(sentenceEnders, r) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
			if len(sentences) == max {
				return strings.Join(sentences, " ")
			}
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, rest)
	}
	if len(sentences) > max {
		sentences = sentences[:max]
	}
	return strings.Join(sentences, " ")
}
