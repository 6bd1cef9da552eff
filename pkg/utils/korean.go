package utils

import (
	"fmt"
	"strings"
)

// myriad units for Korean numerals: 만 (10^4), 억 (10^8), 조 (10^12), 경 (10^16)
var koreanUnits = []struct {
	value int64
	label string
}{
	{10_000_000_000_000_000, "경"},
	{1_000_000_000_000, "조"},
	{100_000_000, "억"},
	{10_000, "만"},
}

// KoreanWon formats a KRW amount as "1,500,000원 (150만)": the comma
// grouped figure followed by a compact Korean numeral reading.
func KoreanWon(amount int64) string {
	return fmt.Sprintf("%s원 (%s)", groupDigits(amount), koreanNumeral(amount))
}

func koreanNumeral(amount int64) string {
	if amount == 0 {
		return "0"
	}

	var b strings.Builder
	rest := amount
	for _, unit := range koreanUnits {
		if group := rest / unit.value; group > 0 {
			b.WriteString(fmt.Sprintf("%d%s", group, unit.label))
			rest %= unit.value
		}
	}
	if rest > 0 {
		b.WriteString(fmt.Sprintf("%d", rest))
	}
	return b.String()
}

func groupDigits(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
