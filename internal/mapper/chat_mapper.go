package mapper

import (
	"encoding/json"

	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/model"

	"gorm.io/datatypes"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatSessionMapper) ToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatSessionMapper) ToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:        msg.Id,
		SessionId: msg.ChatSessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		Content:       msg.Content,
		Role:          msg.Role,
		ChatSessionId: msg.SessionId,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

type ConversationSnapshotMapper struct{}

func NewConversationSnapshotMapper() *ConversationSnapshotMapper {
	return &ConversationSnapshotMapper{}
}

func (m *ConversationSnapshotMapper) ToEntity(s *model.ConversationSnapshot) (*entity.ConversationSnapshot, error) {
	if s == nil {
		return nil, nil
	}

	var payload []entity.SnapshotMessage
	if len(s.Payload) > 0 {
		if err := json.Unmarshal(s.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return &entity.ConversationSnapshot{
		Id:        s.Id,
		SessionId: s.ChatSessionId,
		Payload:   payload,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func (m *ConversationSnapshotMapper) ToModel(s *entity.ConversationSnapshot) (*model.ConversationSnapshot, error) {
	if s == nil {
		return nil, nil
	}

	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, err
	}

	return &model.ConversationSnapshot{
		Id:            s.Id,
		ChatSessionId: s.SessionId,
		Payload:       datatypes.JSON(payload),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}
