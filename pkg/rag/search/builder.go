package search

import (
	"context"
	"errors"
	"fmt"

	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/pkg/embedding"

	"github.com/google/uuid"
)

// ErrNoFilter is returned by Filtered when neither filter is supplied.
var ErrNoFilter = errors.New("search: at least one filter is required")

const (
	DefaultCertainty = 0.5
	DefaultLimit     = 5
)

// QueryBuilder resolves retrieval queries against the document store.
// It never mutates documents.
type QueryBuilder struct {
	embedder embedding.EmbeddingProvider
	factory  unitofwork.RepositoryFactory
	log      logger.ILogger
}

func NewQueryBuilder(embedder embedding.EmbeddingProvider, factory unitofwork.RepositoryFactory, log logger.ILogger) *QueryBuilder {
	return &QueryBuilder{
		embedder: embedder,
		factory:  factory,
		log:      log,
	}
}

// Semantic embeds the query text and returns at most limit documents whose
// best chunk clears the certainty threshold. An empty result is not an
// error.
func (b *QueryBuilder) Semantic(ctx context.Context, text string, certainty float64, limit int) ([]*entity.DocumentSearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	resp, err := b.embedder.Generate(text, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := b.factory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentEmbeddingRepository().SearchSimilarWithScore(ctx, resp.Embedding.Values, limit*3, certainty)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(scored) == 0 {
		return []*entity.DocumentSearchResult{}, nil
	}

	// Chunks arrive ordered by similarity; keep the best chunk per document.
	best := make(map[uuid.UUID]*entity.DocumentSearchResult)
	order := make([]uuid.UUID, 0, len(scored))
	for _, s := range scored {
		id := s.Embedding.DocumentId
		if _, seen := best[id]; seen {
			continue
		}
		best[id] = &entity.DocumentSearchResult{
			ChunkText: s.Embedding.ChunkText,
			Certainty: s.Similarity,
		}
		order = append(order, id)
		if len(order) == limit {
			break
		}
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByIDs{IDs: order})
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	byId := make(map[uuid.UUID]*entity.Document, len(docs))
	for _, d := range docs {
		byId[d.Id] = d
	}

	results := make([]*entity.DocumentSearchResult, 0, len(order))
	for _, id := range order {
		doc, ok := byId[id]
		if !ok {
			// Embedding row outlived its document, skip it.
			b.log.Warn("search", "orphan embedding skipped", map[string]interface{}{"document_id": id.String()})
			continue
		}
		r := best[id]
		r.Document = *doc
		results = append(results, r)
	}
	return results, nil
}

// Filtered returns documents matching the AND of whichever filters are
// non-nil. Results are unordered.
func (b *QueryBuilder) Filtered(ctx context.Context, personalityCode, category *string) ([]*entity.Document, error) {
	if personalityCode == nil && category == nil {
		return nil, ErrNoFilter
	}

	specs := make([]specification.Specification, 0, 2)
	if personalityCode != nil {
		specs = append(specs, specification.ByPersonalityCode{PersonalityCode: *personalityCode})
	}
	if category != nil {
		specs = append(specs, specification.ByCategory{Category: *category})
	}

	uow := b.factory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindAll(ctx, specs...)
}
