package mapper

import (
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/model"
)

type GroupedDocumentMapper struct{}

func NewGroupedDocumentMapper() *GroupedDocumentMapper {
	return &GroupedDocumentMapper{}
}

func (m *GroupedDocumentMapper) ToEntity(g *model.GroupedDocument) *entity.GroupedDocument {
	if g == nil {
		return nil
	}

	return &entity.GroupedDocument{
		Id:        g.Id,
		GroupName: g.GroupName,
		Content:   g.Content,
		RunId:     g.RunId,
		CreatedAt: g.CreatedAt,
	}
}

func (m *GroupedDocumentMapper) ToModel(g *entity.GroupedDocument) *model.GroupedDocument {
	if g == nil {
		return nil
	}

	return &model.GroupedDocument{
		Id:        g.Id,
		GroupName: g.GroupName,
		Content:   g.Content,
		RunId:     g.RunId,
		CreatedAt: g.CreatedAt,
	}
}

func (m *GroupedDocumentMapper) ToEntities(groups []*model.GroupedDocument) []*entity.GroupedDocument {
	entities := make([]*entity.GroupedDocument, len(groups))
	for i, g := range groups {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
