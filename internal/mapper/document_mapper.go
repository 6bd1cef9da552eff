package mapper

import (
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/model"
	"fin-advisor-be/pkg/classifier"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	category := d.Category
	if category == "" {
		category = string(classifier.CategoryUnclassified)
	}

	return &entity.Document{
		Id:              d.Id,
		Filename:        d.Filename,
		Content:         d.Content,
		Summary:         d.Summary,
		Category:        category,
		PersonalityCode: d.PersonalityCode,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:              d.Id,
		Filename:        d.Filename,
		Content:         d.Content,
		Summary:         d.Summary,
		Category:        d.Category,
		PersonalityCode: d.PersonalityCode,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}

	return &entity.DocumentEmbedding{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		ChunkIndex: e.ChunkIndex,
		ChunkText:  e.ChunkText,
		Values:     e.EmbeddingValue.Slice(),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}

	return &model.DocumentEmbedding{
		Id:             e.Id,
		ChunkText:      e.ChunkText,
		EmbeddingValue: pgvector.NewVector(e.Values),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}
