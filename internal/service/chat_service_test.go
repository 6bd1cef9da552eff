package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fin-advisor-be/internal/constant"
	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/repository/memory"
	"fin-advisor-be/internal/testutil"
	"fin-advisor-be/pkg/command"
	"fin-advisor-be/pkg/embedding"
	"fin-advisor-be/pkg/ingest"
	"fin-advisor-be/pkg/llm"
	"fin-advisor-be/pkg/rag/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatStubLLM struct {
	response string
	err      error
	calls    int
	lastOpts int
}

func (s *chatStubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	s.lastOpts = len(options)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *chatStubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type noopEmbedder struct{}

func (noopEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{}, nil
}

type chatFixture struct {
	factory *testutil.Factory
	model   *chatStubLLM
	service IChatService
	userId  uuid.UUID
}

func newChatFixture(t *testing.T, modelOutput string) *chatFixture {
	t.Helper()
	factory := testutil.NewFactory()
	model := &chatStubLLM{response: modelOutput}
	log := testutil.NopLogger{}

	pipeline := ingest.NewPipeline(model, factory, nil, nil, log)
	dispatcher := command.NewDispatcher(pipeline, factory, model, nil, nil, log)
	queryBuilder := search.NewQueryBuilder(noopEmbedder{}, factory, log)
	stateRepo := memory.NewConversationRepository()

	return &chatFixture{
		factory: factory,
		model:   model,
		service: NewChatService(factory, model, queryBuilder, dispatcher, stateRepo, nil, log),
		userId:  uuid.New(),
	}
}

func (f *chatFixture) createSession(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := f.service.CreateSession(context.Background(), f.userId, &dto.CreateSessionRequest{Title: "상담"})
	require.NoError(t, err)
	return resp.Id
}

func TestSendChatFilteredRouteSkipsModel(t *testing.T) {
	f := newChatFixture(t, "이 응답이 나오면 모델이 호출된 것")
	f.factory.Documents = append(f.factory.Documents, &entity.Document{
		Id: uuid.New(), Filename: "정기예금A.pdf", Category: "예금", Summary: "연 3.5% 정기예금",
	})
	sessionId := f.createSession(t)

	resp, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "예금 상품 알려줘",
	})
	require.NoError(t, err)

	assert.Equal(t, RouteFiltered, resp.Route)
	assert.Contains(t, resp.Reply, "정기예금A.pdf")
	assert.Contains(t, resp.Reply, "연 3.5% 정기예금")
	assert.Zero(t, f.model.calls, "filtered route must not call the model")
}

func TestSendChatFilteredRouteNoMatches(t *testing.T) {
	f := newChatFixture(t, "")
	sessionId := f.createSession(t)

	resp, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "채권 상품 있어?",
	})
	require.NoError(t, err)

	assert.Equal(t, RouteFiltered, resp.Route)
	assert.Contains(t, resp.Reply, "찾지 못했습니다")
}

func TestSendChatPlainRouteReturnsModelOutputVerbatim(t *testing.T) {
	f := newChatFixture(t, "안녕하세요! 무엇을 도와드릴까요?")
	sessionId := f.createSession(t)

	resp, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	require.NoError(t, err)

	assert.Equal(t, RoutePlain, resp.Route)
	assert.Equal(t, "안녕하세요! 무엇을 도와드릴까요?", resp.Reply)
}

func TestSendChatForwardsGenerationOptions(t *testing.T) {
	factory := testutil.NewFactory()
	model := &chatStubLLM{response: "안내드립니다"}
	log := testutil.NopLogger{}
	pipeline := ingest.NewPipeline(model, factory, nil, nil, log)
	dispatcher := command.NewDispatcher(pipeline, factory, model, nil, nil, log)
	queryBuilder := search.NewQueryBuilder(noopEmbedder{}, factory, log)
	opts := []llm.Option{llm.WithTemperature(0.2), llm.WithMaxTokens(512)}
	svc := NewChatService(factory, model, queryBuilder, dispatcher, memory.NewConversationRepository(), opts, log)

	userId := uuid.New()
	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{Title: "상담"})
	require.NoError(t, err)

	_, err = svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ChatSessionId: created.Id, Message: "안녕",
	})
	require.NoError(t, err)

	assert.Equal(t, len(opts), model.lastOpts, "configured generation options must reach the model")
}

func TestSendChatDegradesWhenModelRateLimited(t *testing.T) {
	f := newChatFixture(t, "")
	f.model.err = llm.ErrRateLimited
	f.service.(*chatService).backoffBase = time.Millisecond
	sessionId := f.createSession(t)

	resp, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	require.NoError(t, err, "a failing model must not surface as a fault")

	assert.Equal(t, RoutePlain, resp.Route)
	assert.Equal(t, constant.ReplyUnavailable, resp.Reply)
	assert.Equal(t, modelRetryCap+1, f.model.calls, "rate limits retry up to the cap before degrading")
	assert.Len(t, f.factory.Messages, 2, "degraded turns are still persisted")
}

func TestSendChatDegradesWithoutRetryOnModelError(t *testing.T) {
	f := newChatFixture(t, "")
	f.model.err = errors.New("upstream unavailable")
	sessionId := f.createSession(t)

	resp, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ReplyUnavailable, resp.Reply)
	assert.Equal(t, 1, f.model.calls, "only rate limits are retried")
}

func TestSendChatCommandRouteDispatches(t *testing.T) {
	f := newChatFixture(t, "DELETE_DOCUMENT: 오래된문서.pdf")
	f.factory.Documents = append(f.factory.Documents, &entity.Document{
		Id: uuid.New(), Filename: "오래된문서.pdf", Content: "내용",
	})
	sessionId := f.createSession(t)

	resp, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "오래된 문서 지워줘",
	})
	require.NoError(t, err)

	assert.Equal(t, RouteCommand, resp.Route)
	assert.Contains(t, resp.Reply, "삭제했습니다")
	assert.Empty(t, f.factory.Documents)
}

func TestSendChatPersistsBothTurns(t *testing.T) {
	f := newChatFixture(t, "그냥 답변")
	sessionId := f.createSession(t)

	_, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	require.NoError(t, err)

	require.Len(t, f.factory.Messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, f.factory.Messages[0].Role)
	assert.Equal(t, "안녕", f.factory.Messages[0].Content)
	assert.Equal(t, constant.ChatMessageRoleAssistant, f.factory.Messages[1].Role)
}

func TestSendChatRejectsForeignSession(t *testing.T) {
	f := newChatFixture(t, "")
	sessionId := f.createSession(t)

	_, err := f.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSnapshotRoundTrip(t *testing.T) {
	f := newChatFixture(t, "첫 답변")
	sessionId := f.createSession(t)

	_, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.SaveSnapshot(context.Background(), f.userId, sessionId))
	require.Len(t, f.factory.Snapshots, 1)
	// system prompt + user turn + assistant turn
	assert.Len(t, f.factory.Snapshots[0].Payload, 3)

	// Saving again overwrites rather than duplicating.
	require.NoError(t, f.service.SaveSnapshot(context.Background(), f.userId, sessionId))
	assert.Len(t, f.factory.Snapshots, 1)
}

func TestSendChatRestoresStateFromSnapshot(t *testing.T) {
	f := newChatFixture(t, "스냅샷 복원 후 답변")
	sessionId := f.createSession(t)

	f.factory.Snapshots = append(f.factory.Snapshots, &entity.ConversationSnapshot{
		Id:        uuid.New(),
		SessionId: sessionId,
		Payload: []entity.SnapshotMessage{
			{Role: constant.ChatMessageRoleSystem, Content: constant.ChatSystemPromptV1},
			{Role: constant.ChatMessageRoleUser, Content: "이전 대화"},
			{Role: constant.ChatMessageRoleAssistant, Content: "이전 답변"},
		},
	})

	// Build a second service sharing the stores but with a cold cache,
	// as after a process restart.
	model := &chatStubLLM{response: "스냅샷 복원 후 답변"}
	log := testutil.NopLogger{}
	pipeline := ingest.NewPipeline(model, f.factory, nil, nil, log)
	dispatcher := command.NewDispatcher(pipeline, f.factory, model, nil, nil, log)
	queryBuilder := search.NewQueryBuilder(noopEmbedder{}, f.factory, log)
	restarted := NewChatService(f.factory, model, queryBuilder, dispatcher, memory.NewConversationRepository(), nil, log)

	resp, err := restarted.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "계속 이야기하자",
	})
	require.NoError(t, err)
	assert.Equal(t, RoutePlain, resp.Route)

	require.NoError(t, restarted.SaveSnapshot(context.Background(), f.userId, sessionId))
	// restored 3 + new user turn + new assistant turn
	assert.Len(t, f.factory.Snapshots[0].Payload, 5)
}

func TestDeleteSessionRemovesEverything(t *testing.T) {
	f := newChatFixture(t, "답변")
	sessionId := f.createSession(t)

	_, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "안녕",
	})
	require.NoError(t, err)
	require.NoError(t, f.service.SaveSnapshot(context.Background(), f.userId, sessionId))

	require.NoError(t, f.service.DeleteSession(context.Background(), f.userId, sessionId))
	assert.Empty(t, f.factory.Sessions)
	assert.Empty(t, f.factory.Messages)
	assert.Empty(t, f.factory.Snapshots)

	_, err = f.service.GetChatHistory(context.Background(), f.userId, sessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetChatHistoryReturnsPersistedTurns(t *testing.T) {
	f := newChatFixture(t, "답변입니다")
	sessionId := f.createSession(t)

	_, err := f.service.SendChat(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: sessionId, Message: "질문입니다",
	})
	require.NoError(t, err)

	history, err := f.service.GetChatHistory(context.Background(), f.userId, sessionId)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "질문입니다", history[0].Content)
	assert.Equal(t, "답변입니다", history[1].Content)
}
