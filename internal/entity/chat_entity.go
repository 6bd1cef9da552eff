package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

// ConversationSnapshot persists the in-memory conversation state of a
// session so it survives a restart. Payload is an ordered list of
// role/content pairs.
type ConversationSnapshot struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Payload   []SnapshotMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SnapshotMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
