package utils

// SplitText splits a long string into chunks of approximately chunkSize
// runes with an overlap preserving context at the boundaries. Character
// based; safe for Hangul because the slicing is rune-aligned.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// Truncate caps a string at max runes, appending an ellipsis marker when
// anything was cut. Used to bound per-document context in LLM prompts.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
