package implementation

import (
	"context"

	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/mapper"
	"fin-advisor-be/internal/model"
	"fin-advisor-be/internal/repository/contract"
	"fin-advisor-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GroupedDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GroupedDocumentMapper
}

func NewGroupedDocumentRepository(db *gorm.DB) contract.GroupedDocumentRepository {
	return &GroupedDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewGroupedDocumentMapper(),
	}
}

func (r *GroupedDocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GroupedDocumentRepositoryImpl) CreateBulk(ctx context.Context, groups []*entity.GroupedDocument) error {
	if len(groups) == 0 {
		return nil
	}
	models := make([]*model.GroupedDocument, len(groups))
	for i, g := range groups {
		models[i] = r.mapper.ToModel(g)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*groups[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *GroupedDocumentRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.GroupedDocument{}).Error
}

func (r *GroupedDocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GroupedDocument, error) {
	var models []*model.GroupedDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GroupedDocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GroupedDocument{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
