package service

import (
	"context"

	"fin-advisor-be/internal/dto"
	"fin-advisor-be/pkg/profile"
	"fin-advisor-be/pkg/rag/search"
	"fin-advisor-be/pkg/utils"
)

type IProfileService interface {
	Score(ctx context.Context, req *dto.ScoreProfileRequest) (*dto.ScoreProfileResponse, error)
	RecommendDocuments(ctx context.Context, req *dto.ScoreProfileRequest) (*dto.RecommendDocumentsResponse, error)
}

type profileService struct {
	queryBuilder *search.QueryBuilder
}

func NewProfileService(queryBuilder *search.QueryBuilder) IProfileService {
	return &profileService{
		queryBuilder: queryBuilder,
	}
}

func (s *profileService) Score(ctx context.Context, req *dto.ScoreProfileRequest) (*dto.ScoreProfileResponse, error) {
	incomeLevel := profile.ScoreIncome(req.AssetSize, req.MonthlySalary)
	rec := profile.Recommend(incomeLevel, req.WantsCredit, req.Age, req.PersonalityCode)

	return &dto.ScoreProfileResponse{
		AssetTier:     profile.AssetTier(req.AssetSize),
		SalaryTier:    profile.SalaryTier(req.MonthlySalary),
		IncomeLevel:   incomeLevel,
		Category:      string(rec.Category),
		Explanation:   rec.Explanation,
		AssetDisplay:  utils.KoreanWon(req.AssetSize),
		SalaryDisplay: utils.KoreanWon(req.MonthlySalary),
	}, nil
}

// RecommendDocuments resolves the profile to a category, then returns
// the stored documents in that category.
func (s *profileService) RecommendDocuments(ctx context.Context, req *dto.ScoreProfileRequest) (*dto.RecommendDocumentsResponse, error) {
	incomeLevel := profile.ScoreIncome(req.AssetSize, req.MonthlySalary)
	rec := profile.Recommend(incomeLevel, req.WantsCredit, req.Age, req.PersonalityCode)

	category := string(rec.Category)
	docs, err := s.queryBuilder.Filtered(ctx, nil, &category)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = dto.DocumentResponse{
			Id:              d.Id,
			Filename:        d.Filename,
			Content:         d.Content,
			Summary:         d.Summary,
			Category:        d.Category,
			PersonalityCode: d.PersonalityCode,
			CreatedAt:       d.CreatedAt,
		}
	}
	return &dto.RecommendDocumentsResponse{
		Category:  category,
		Documents: out,
	}, nil
}
