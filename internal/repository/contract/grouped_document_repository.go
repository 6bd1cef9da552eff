package contract

import (
	"context"

	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/repository/specification"
)

type GroupedDocumentRepository interface {
	CreateBulk(ctx context.Context, groups []*entity.GroupedDocument) error
	DeleteAll(ctx context.Context) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupedDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
