package contract

import (
	"context"

	"fin-advisor-be/internal/entity"

	"github.com/google/uuid"
)

type ConversationSnapshotRepository interface {
	// Upsert replaces the snapshot for the session, creating it when absent.
	Upsert(ctx context.Context, snapshot *entity.ConversationSnapshot) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationSnapshot, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
