package service

import (
	"context"
	"fmt"

	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/pkg/extraction"
	"fin-advisor-be/pkg/ingest"
	"fin-advisor-be/pkg/rag/search"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	IngestFolder(ctx context.Context, req *dto.IngestFolderRequest) (*dto.IngestFolderResponse, error)
	ListByCategory(ctx context.Context, category string) ([]*dto.DocumentResponse, error)
	ListFiltered(ctx context.Context, personalityCode, category *string) ([]*dto.DocumentResponse, error)
	SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResponse, error)
	ListGrouped(ctx context.Context) ([]*dto.GroupedDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	pipeline         *ingest.Pipeline
	queryBuilder     *search.QueryBuilder
	uowFactory       unitofwork.RepositoryFactory
	defaultCertainty float64
	log              logger.ILogger
}

func NewDocumentService(
	pipeline *ingest.Pipeline,
	queryBuilder *search.QueryBuilder,
	uowFactory unitofwork.RepositoryFactory,
	defaultCertainty float64,
	log logger.ILogger,
) IDocumentService {
	if defaultCertainty <= 0 {
		defaultCertainty = search.DefaultCertainty
	}
	return &documentService{
		pipeline:         pipeline,
		queryBuilder:     queryBuilder,
		uowFactory:       uowFactory,
		defaultCertainty: defaultCertainty,
		log:              log,
	}
}

func (s *documentService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	result, err := s.pipeline.Ingest(ctx, req.Filename, req.Content)
	if err != nil {
		return nil, err
	}

	resp := &dto.IngestDocumentResponse{
		Filename: req.Filename,
		Outcome:  string(result.Outcome),
		Category: string(result.Category),
	}
	if result.Document != nil {
		id := result.Document.Id
		resp.Id = &id
	}
	return resp, nil
}

// IngestFolder walks a server-side directory of PDFs and ingests each
// extracted text. Per-file extraction failures are logged and skipped.
func (s *documentService) IngestFolder(ctx context.Context, req *dto.IngestFolderRequest) (*dto.IngestFolderResponse, error) {
	files, err := extraction.ExtractFolder(req.Path)
	if err != nil {
		return nil, fmt.Errorf("extract folder: %w", err)
	}

	resp := &dto.IngestFolderResponse{Results: make([]dto.IngestDocumentResponse, 0, len(files))}
	for _, f := range files {
		result, err := s.pipeline.Ingest(ctx, f.Filename, f.Text)
		if err != nil {
			s.log.Error("document", "folder ingest failed for file", map[string]interface{}{
				"filename": f.Filename,
				"error":    err.Error(),
			})
			continue
		}
		item := dto.IngestDocumentResponse{
			Filename: f.Filename,
			Outcome:  string(result.Outcome),
			Category: string(result.Category),
		}
		if result.Document != nil {
			id := result.Document.Id
			item.Id = &id
		}
		resp.Results = append(resp.Results, item)
	}
	return resp, nil
}

func (s *documentService) ListByCategory(ctx context.Context, category string) ([]*dto.DocumentResponse, error) {
	return s.ListFiltered(ctx, nil, &category)
}

func (s *documentService) ListFiltered(ctx context.Context, personalityCode, category *string) ([]*dto.DocumentResponse, error) {
	docs, err := s.queryBuilder.Filtered(ctx, personalityCode, category)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = &dto.DocumentResponse{
			Id:              d.Id,
			Filename:        d.Filename,
			Content:         d.Content,
			Summary:         d.Summary,
			Category:        d.Category,
			PersonalityCode: d.PersonalityCode,
			CreatedAt:       d.CreatedAt,
		}
	}
	return out, nil
}

func (s *documentService) SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.SemanticSearchResponse, error) {
	certainty := s.defaultCertainty
	if req.Certainty != nil {
		certainty = *req.Certainty
	}

	results, err := s.queryBuilder.Semantic(ctx, req.Query, certainty, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SemanticSearchResponse, len(results))
	for i, r := range results {
		out[i] = &dto.SemanticSearchResponse{
			Id:        r.Document.Id,
			Filename:  r.Document.Filename,
			Summary:   r.Document.Summary,
			Category:  r.Document.Category,
			Chunk:     r.ChunkText,
			Certainty: r.Certainty,
		}
	}
	return out, nil
}

func (s *documentService) ListGrouped(ctx context.Context) ([]*dto.GroupedDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	groups, err := uow.GroupedDocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	out := make([]*dto.GroupedDocumentResponse, len(groups))
	for i, g := range groups {
		out[i] = &dto.GroupedDocumentResponse{
			GroupName: g.GroupName,
			Content:   g.Content,
			RunId:     g.RunId,
			CreatedAt: g.CreatedAt,
		}
	}
	return out, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	return uow.DocumentRepository().Delete(ctx, id)
}
