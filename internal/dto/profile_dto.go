package dto

type ScoreProfileRequest struct {
	AssetSize       int64  `json:"asset_size" validate:"gte=0"`
	MonthlySalary   int64  `json:"monthly_salary" validate:"gte=0"`
	WantsCredit     bool   `json:"wants_credit"`
	Age             int    `json:"age" validate:"gte=0,lte=150"`
	PersonalityCode string `json:"personality_code" validate:"required,len=4"`
}

type ScoreProfileResponse struct {
	AssetTier   int    `json:"asset_tier"`
	SalaryTier  int    `json:"salary_tier"`
	IncomeLevel int    `json:"income_level"`
	Category    string `json:"category"`
	Explanation string `json:"explanation"`
	// Formatted inputs for display, e.g. "5,000,000원 (500만)"
	AssetDisplay  string `json:"asset_display"`
	SalaryDisplay string `json:"salary_display"`
}

type RecommendDocumentsResponse struct {
	Category  string             `json:"category"`
	Documents []DocumentResponse `json:"documents"`
}
