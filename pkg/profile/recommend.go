package profile

import (
	"fmt"
	"strings"

	"fin-advisor-be/pkg/classifier"
)

// Preferences derived from a 4-letter personality code. The code is a
// heuristic key only; it is never validated against an external standard.
type Preferences struct {
	Stability   bool // 'I': prefers stable products over high-yield ones
	LongHorizon bool // 'J': prefers long investment horizons
	Variable    bool // 'N': prefers variable future returns over fixed current rates
}

// ParsePreferences extracts the three binary preferences from a
// personality code. Matching is case-insensitive and positional order is
// not enforced, so partial or malformed codes degrade gracefully.
func ParsePreferences(code string) Preferences {
	upper := strings.ToUpper(code)
	return Preferences{
		Stability:   strings.ContainsRune(upper, 'I'),
		LongHorizon: strings.ContainsRune(upper, 'J'),
		Variable:    strings.ContainsRune(upper, 'N'),
	}
}

// Recommendation is a resolved product category with the deterministic
// explanation of which preference drove the decision.
type Recommendation struct {
	Category    classifier.Category
	Explanation string
}

// Recommend resolves a product category from an income level, credit
// intent, age and personality code. The decision tree is evaluated in
// fixed order: the credit flag short-circuits everything, then the risk
// preference picks a branch, and the return-type preference nudges the
// final choice between the two candidates on that branch.
func Recommend(incomeLevel int, wantsCredit bool, age int, code string) Recommendation {
	if wantsCredit {
		return Recommendation{
			Category:    classifier.CategoryBond,
			Explanation: "credit flag set: bond-type products short-circuit all preference logic",
		}
	}

	prefs := ParsePreferences(code)

	if prefs.Stability {
		if incomeLevel < 6 {
			if prefs.Variable {
				return Recommendation{
					Category:    classifier.CategoryDeposit,
					Explanation: fmt.Sprintf("stability preference at income level %d, nudged up by variable-return preference", incomeLevel),
				}
			}
			return Recommendation{
				Category:    classifier.CategorySavings,
				Explanation: fmt.Sprintf("stability preference at income level %d with fixed-rate preference", incomeLevel),
			}
		}
		if prefs.Variable {
			return Recommendation{
				Category:    classifier.CategoryBond,
				Explanation: fmt.Sprintf("stability preference at income level %d, nudged up by variable-return preference", incomeLevel),
			}
		}
		return Recommendation{
			Category:    classifier.CategoryDeposit,
			Explanation: fmt.Sprintf("stability preference at income level %d with fixed-rate preference", incomeLevel),
		}
	}

	if age <= 34 && prefs.LongHorizon {
		if prefs.Variable {
			return Recommendation{
				Category:    classifier.CategoryYouth,
				Explanation: fmt.Sprintf("high-yield preference with long horizon at age %d and variable-return preference", age),
			}
		}
		return Recommendation{
			Category:    classifier.CategoryBond,
			Explanation: fmt.Sprintf("high-yield preference with long horizon at age %d but fixed-rate preference", age),
		}
	}

	if prefs.Variable {
		return Recommendation{
			Category:    classifier.CategoryBond,
			Explanation: "high-yield preference with short horizon and variable-return preference",
		}
	}
	return Recommendation{
		Category:    classifier.CategoryDeposit,
		Explanation: "high-yield preference with short horizon but fixed-rate preference",
	}
}
