package classifier

import (
	"strings"
	"unicode"
)

// Category is one label from the fixed financial-product taxonomy.
type Category string

const (
	CategoryBond         Category = "채권" // bonds / credit products
	CategorySavings      Category = "적금" // installment savings
	CategoryDeposit      Category = "예금" // time deposits
	CategoryYouth        Category = "청년" // youth-targeted accounts
	CategoryUnclassified Category = "미지정"
)

// Categories lists the taxonomy in declaration order. The order doubles as
// the tie-break priority: when two categories reach the same score, the one
// declared first wins.
var Categories = []Category{CategoryBond, CategorySavings, CategoryDeposit, CategoryYouth}

// Result is the outcome of a single scoring pass.
type Result struct {
	Category Category
	Score    int
}

type ruleSet struct {
	category Category
	weight   int
	phrases  []string
}

// Keyword table and weights carried over from the production rule set.
// Each phrase contributes its category weight once when it appears as a
// whole word, regardless of how many times it occurs.
var rules = []ruleSet{
	{
		category: CategoryBond,
		weight:   5,
		phrases: []string{
			"채권", "국채", "회사채", "신용등급", "발행자", "거치 기간", "유동성",
			"표면 이율", "발행기관", "발행금액", "수익률", "발행일", "할인 채권",
			"채권 시장", "투자 등급", "기간 채권", "만기 채권", "국내 채권",
			"해외 채권", "채권 펀드", "장기 채권", "단기 채권", "채권 등급",
		},
	},
	{
		category: CategorySavings,
		weight:   5,
		phrases:  []string{"적금", "저축", "월 적립", "자동 이체", "정기", "납입", "출금 제한"},
	},
	{
		category: CategoryDeposit,
		weight:   5,
		phrases:  []string{"예금", "정기예금", "거치", "이자", "파킹 통장", "단리", "복리", "고정 금리", "변동 금리"},
	},
	{
		category: CategoryYouth,
		weight:   8,
		phrases:  []string{"청년", "청년내일저축계좌", "청년도약계좌", "청년희망적금"},
	},
}

// Classify maps text to the highest-scoring category. Ties break by
// declaration order; an all-zero score returns CategoryUnclassified.
// Pure function: identical input always yields the identical category.
func Classify(text string) Category {
	return Score(text).Category
}

// Score runs the full keyword pass and returns the winning category with
// its aggregate score.
func Score(text string) Result {
	best := Result{Category: CategoryUnclassified, Score: 0}
	lower := strings.ToLower(text)

	for _, rs := range rules {
		score := 0
		for _, phrase := range rs.phrases {
			if containsWholeWord(lower, strings.ToLower(phrase)) {
				score += rs.weight
			}
		}
		if score > best.Score {
			best = Result{Category: rs.category, Score: score}
		}
	}

	return best
}

// containsWholeWord reports whether phrase occurs in text with non-word
// boundaries on both ends. Phrases with internal whitespace still require
// boundaries only at the outer edges.
func containsWholeWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(phrase)) {
			return true
		}
		start = idx + len(phrase)
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := lastRune(text[:idx])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	for _, r := range text[end:] {
		return !isWordRune(r)
	}
	return true
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
