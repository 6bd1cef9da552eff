package profile

// Breakpoint tables for the income-tier step functions. Values at or below
// a breakpoint map to that tier; values above the last breakpoint map to
// tier 10. Amounts are in KRW.
var assetBreakpoints = []int64{
	5_000_000,
	10_000_000,
	20_000_000,
	30_000_000,
	50_000_000,
	70_000_000,
	100_000_000,
	200_000_000,
	500_000_000,
}

var salaryBreakpoints = []int64{
	1_500_000,
	2_000_000,
	2_500_000,
	3_000_000,
	3_500_000,
	4_000_000,
	4_500_000,
	5_000_000,
	7_000_000,
}

// AssetTier maps a total asset size to a tier in [1,10].
func AssetTier(assetSize int64) int {
	return tierFor(assetSize, assetBreakpoints)
}

// SalaryTier maps a monthly salary to a tier in [1,10].
func SalaryTier(monthlySalary int64) int {
	return tierFor(monthlySalary, salaryBreakpoints)
}

// ScoreIncome combines the asset and salary tiers into a single income
// level in [1,10]: the arithmetic mean of the two tiers rounded half-up.
func ScoreIncome(assetSize, monthlySalary int64) int {
	asset := AssetTier(assetSize)
	salary := SalaryTier(monthlySalary)
	// Round-half-up mean of two integers without floating point.
	return (asset + salary + 1) / 2
}

func tierFor(value int64, breakpoints []int64) int {
	for i, bp := range breakpoints {
		if value <= bp {
			return i + 1
		}
	}
	return len(breakpoints) + 1
}
