package service

import (
	"context"
	"testing"

	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/testutil"
	"fin-advisor-be/pkg/rag/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(factory *testutil.Factory) IProfileService {
	qb := search.NewQueryBuilder(noopEmbedder{}, factory, testutil.NopLogger{})
	return NewProfileService(qb)
}

func TestProfileScore(t *testing.T) {
	svc := newProfileService(testutil.NewFactory())

	resp, err := svc.Score(context.Background(), &dto.ScoreProfileRequest{
		AssetSize:       5_000_000,
		MonthlySalary:   1_500_000,
		Age:             28,
		PersonalityCode: "INTJ",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AssetTier)
	assert.Equal(t, 1, resp.SalaryTier)
	assert.Equal(t, 1, resp.IncomeLevel)
	// Stability plus variable-return preference at a low income level.
	assert.Equal(t, "예금", resp.Category)
	assert.NotEmpty(t, resp.Explanation)
	assert.Contains(t, resp.AssetDisplay, "원")
	assert.Contains(t, resp.SalaryDisplay, "원")
}

func TestProfileScoreCreditShortCircuits(t *testing.T) {
	svc := newProfileService(testutil.NewFactory())

	resp, err := svc.Score(context.Background(), &dto.ScoreProfileRequest{
		AssetSize:       600_000_000,
		MonthlySalary:   8_000_000,
		WantsCredit:     true,
		Age:             45,
		PersonalityCode: "ESFP",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.AssetTier)
	assert.Equal(t, 10, resp.SalaryTier)
	assert.Equal(t, "채권", resp.Category)
}

func TestRecommendDocumentsReturnsCategoryMatches(t *testing.T) {
	factory := testutil.NewFactory()
	factory.Documents = append(factory.Documents,
		&entity.Document{Id: uuid.New(), Filename: "예금A.pdf", Category: "예금"},
		&entity.Document{Id: uuid.New(), Filename: "채권B.pdf", Category: "채권"},
	)
	svc := newProfileService(factory)

	resp, err := svc.RecommendDocuments(context.Background(), &dto.ScoreProfileRequest{
		AssetSize:       5_000_000,
		MonthlySalary:   1_500_000,
		Age:             28,
		PersonalityCode: "INTJ",
	})
	require.NoError(t, err)

	assert.Equal(t, "예금", resp.Category)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "예금A.pdf", resp.Documents[0].Filename)
}
