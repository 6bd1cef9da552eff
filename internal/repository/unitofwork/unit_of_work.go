package unitofwork

import (
	"context"

	"fin-advisor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	GroupedDocumentRepository() contract.GroupedDocumentRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ConversationSnapshotRepository() contract.ConversationSnapshotRepository
}
