package conversation

import (
	"regexp"
	"strings"

	"fin-advisor-be/pkg/classifier"
)

// Filter is what a user utterance resolves to when it names a category
// or carries a personality code. Either field may be nil, never both.
type Filter struct {
	Category        *string
	PersonalityCode *string
}

var personalityCodePattern = regexp.MustCompile(`\b[EI][SN][TF][JP]\b`)

// DetectFilter scans an utterance for category names and personality
// codes. It returns nil when neither is present, which routes the turn
// to the model instead of a filtered retrieval. The first declared
// category wins when several are mentioned.
func DetectFilter(text string) *Filter {
	var f Filter

	for _, cat := range classifier.Categories {
		if strings.Contains(text, string(cat)) {
			name := string(cat)
			f.Category = &name
			break
		}
	}

	if code := personalityCodePattern.FindString(strings.ToUpper(text)); code != "" {
		f.PersonalityCode = &code
	}

	if f.Category == nil && f.PersonalityCode == nil {
		return nil
	}
	return &f
}
