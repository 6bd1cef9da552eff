package implementation

import (
	"context"
	"errors"

	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/mapper"
	"fin-advisor-be/internal/model"
	"fin-advisor-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationSnapshotMapper
}

func NewConversationSnapshotRepository(db *gorm.DB) contract.ConversationSnapshotRepository {
	return &ConversationSnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationSnapshotMapper(),
	}
}

func (r *ConversationSnapshotRepositoryImpl) Upsert(ctx context.Context, snapshot *entity.ConversationSnapshot) error {
	m, err := r.mapper.ToModel(snapshot)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*snapshot = *e
	return nil
}

func (r *ConversationSnapshotRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationSnapshot, error) {
	var m model.ConversationSnapshot
	err := r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ConversationSnapshotRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).Delete(&model.ConversationSnapshot{}).Error
}
