package service

import (
	"context"
	"testing"

	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/testutil"
	"fin-advisor-be/pkg/embedding"
	"fin-advisor-be/pkg/ingest"
	"fin-advisor-be/pkg/rag/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docFixture struct {
	factory *testutil.Factory
	service IDocumentService
}

func newDocFixture(embedder embedding.EmbeddingProvider) *docFixture {
	factory := testutil.NewFactory()
	log := testutil.NopLogger{}
	model := &chatStubLLM{response: "요약"}
	pipeline := ingest.NewPipeline(model, factory, nil, nil, log)
	qb := search.NewQueryBuilder(embedder, factory, log)
	return &docFixture{
		factory: factory,
		service: NewDocumentService(pipeline, qb, factory, 0.5, log),
	}
}

func TestIngestThenBrowseByCategory(t *testing.T) {
	f := newDocFixture(noopEmbedder{})

	resp, err := f.service.Ingest(context.Background(), &dto.IngestDocumentRequest{
		Filename: "정기예금A.pdf",
		Content:  "정기예금 가입 시 이자 지급 조건 안내",
	})
	require.NoError(t, err)
	assert.Equal(t, "created", resp.Outcome)
	assert.Equal(t, "예금", resp.Category)

	docs, err := f.service.ListByCategory(context.Background(), "예금")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "정기예금A.pdf", docs[0].Filename)

	docs, err = f.service.ListByCategory(context.Background(), "채권")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngestDuplicateReportsWithoutStoring(t *testing.T) {
	f := newDocFixture(noopEmbedder{})

	_, err := f.service.Ingest(context.Background(), &dto.IngestDocumentRequest{
		Filename: "적금B.pdf", Content: "월 적립식 적금",
	})
	require.NoError(t, err)

	resp, err := f.service.Ingest(context.Background(), &dto.IngestDocumentRequest{
		Filename: "적금B.pdf", Content: "다른 내용",
	})
	require.NoError(t, err)
	assert.Equal(t, "duplicate", resp.Outcome)
	assert.Len(t, f.factory.Documents, 1)
}

type unitEmbedder struct{}

func (unitEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0}},
	}, nil
}

func TestSemanticSearchAboveAttainableCertaintyIsEmpty(t *testing.T) {
	f := newDocFixture(unitEmbedder{})
	docId := uuid.New()
	f.factory.Documents = append(f.factory.Documents, &entity.Document{Id: docId, Filename: "예금.pdf"})
	f.factory.Embeds = append(f.factory.Embeds, &entity.DocumentEmbedding{
		Id: uuid.New(), DocumentId: docId, ChunkText: "예금", Values: []float32{1, 0},
	})

	over := 1.01
	results, err := f.service.SemanticSearch(context.Background(), &dto.SemanticSearchRequest{
		Query: "예금", Certainty: &over,
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	// The identical vector clears any attainable threshold.
	results, err = f.service.SemanticSearch(context.Background(), &dto.SemanticSearchRequest{Query: "예금"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "예금.pdf", results[0].Filename)
}

func TestDeleteRemovesDocumentAndEmbeddings(t *testing.T) {
	f := newDocFixture(noopEmbedder{})
	docId := uuid.New()
	f.factory.Documents = append(f.factory.Documents, &entity.Document{Id: docId, Filename: "예금.pdf"})
	f.factory.Embeds = append(f.factory.Embeds, &entity.DocumentEmbedding{
		Id: uuid.New(), DocumentId: docId,
	})

	require.NoError(t, f.service.Delete(context.Background(), docId))
	assert.Empty(t, f.factory.Documents)
	assert.Empty(t, f.factory.Embeds)
}
