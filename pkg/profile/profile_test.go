package profile

import (
	"testing"

	"fin-advisor-be/pkg/classifier"
)

func TestScoreIncome(t *testing.T) {
	tests := []struct {
		name          string
		assetSize     int64
		monthlySalary int64
		want          int
	}{
		{"both at floor", 5_000_000, 1_500_000, 1},
		{"zero inputs", 0, 0, 1},
		{"both above ceiling", 1_000_000_000, 10_000_000, 10},
		{"asset tier 2 salary tier 1", 10_000_000, 1_500_000, 2}, // mean 1.5 rounds up
		{"asset tier 5 salary tier 4", 50_000_000, 3_000_000, 5}, // mean 4.5 rounds up
		{"asset tier 3 salary tier 3", 20_000_000, 2_500_000, 3},
		{"just above breakpoint", 5_000_001, 1_500_001, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreIncome(tt.assetSize, tt.monthlySalary)
			if got != tt.want {
				t.Errorf("ScoreIncome(%d, %d) = %d, want %d", tt.assetSize, tt.monthlySalary, got, tt.want)
			}
		})
	}
}

func TestScoreIncomeBounds(t *testing.T) {
	values := []int64{0, 1, 1_500_000, 5_000_000, 33_333_333, 100_000_000, 999_999_999_999}
	for _, a := range values {
		for _, s := range values {
			got := ScoreIncome(a, s)
			if got < 1 || got > 10 {
				t.Errorf("ScoreIncome(%d, %d) = %d, out of [1,10]", a, s, got)
			}
		}
	}
}

func TestScoreIncomeMonotonic(t *testing.T) {
	values := []int64{0, 1_000_000, 5_000_000, 20_000_000, 70_000_000, 300_000_000, 600_000_000}
	for i := 1; i < len(values); i++ {
		prev := ScoreIncome(values[i-1], 2_000_000)
		next := ScoreIncome(values[i], 2_000_000)
		if next < prev {
			t.Errorf("ScoreIncome not monotonic in asset size: f(%d)=%d > f(%d)=%d",
				values[i-1], prev, values[i], next)
		}
		prev = ScoreIncome(20_000_000, values[i-1])
		next = ScoreIncome(20_000_000, values[i])
		if next < prev {
			t.Errorf("ScoreIncome not monotonic in salary: f(%d)=%d > f(%d)=%d",
				values[i-1], prev, values[i], next)
		}
	}
}

func TestRecommendCreditShortCircuits(t *testing.T) {
	codes := []string{"INTJ", "ENFP", "ISTP", "", "XXXX"}
	for _, code := range codes {
		for _, level := range []int{1, 5, 10} {
			rec := Recommend(level, true, 28, code)
			if rec.Category != classifier.CategoryBond {
				t.Errorf("Recommend(%d, true, 28, %q) = %q, want %q",
					level, code, rec.Category, classifier.CategoryBond)
			}
		}
	}
}

func TestRecommendDecisionTree(t *testing.T) {
	tests := []struct {
		name        string
		incomeLevel int
		age         int
		code        string
		want        classifier.Category
	}{
		{"stability low income fixed rate", 3, 40, "ISTJ", classifier.CategorySavings},
		{"stability low income variable", 3, 40, "INTJ", classifier.CategoryDeposit},
		{"stability high income fixed rate", 7, 40, "ISTJ", classifier.CategoryDeposit},
		{"stability high income variable", 7, 40, "INTJ", classifier.CategoryBond},
		{"young long horizon variable", 5, 28, "ENFJ", classifier.CategoryYouth},
		{"young long horizon fixed rate", 5, 28, "ESFJ", classifier.CategoryBond},
		{"over 34 high yield variable", 5, 40, "ENFJ", classifier.CategoryBond},
		{"over 34 high yield fixed rate", 5, 40, "ESFP", classifier.CategoryDeposit},
		{"young but short horizon variable", 5, 28, "ENFP", classifier.CategoryBond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.incomeLevel, false, tt.age, tt.code)
			if rec.Category != tt.want {
				t.Errorf("Recommend(%d, false, %d, %q) = %q, want %q",
					tt.incomeLevel, tt.age, tt.code, rec.Category, tt.want)
			}
			if rec.Explanation == "" {
				t.Error("Explanation must not be empty")
			}
		})
	}
}

func TestRecommendDeterministicExplanation(t *testing.T) {
	a := Recommend(4, false, 30, "INTJ")
	b := Recommend(4, false, 30, "INTJ")
	if a.Explanation != b.Explanation {
		t.Errorf("Explanation not deterministic: %q vs %q", a.Explanation, b.Explanation)
	}
}
