package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fin-advisor-be/internal/constant"
	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/repository/memory"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/pkg/command"
	"fin-advisor-be/pkg/llm"
	"fin-advisor-be/pkg/rag/conversation"
	"fin-advisor-be/pkg/rag/search"
	"fin-advisor-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	RouteFiltered = "filtered"
	RouteCommand  = "command"
	RoutePlain    = "plain"

	summaryDisplaySentences = 2
	defaultSessionTitle     = "새 상담"

	modelRetryCap      = 3
	modelRetryBaseWait = 1 * time.Second
)

var ErrSessionNotFound = fmt.Errorf("chat session not found")

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SaveSnapshot(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

// chatService runs one turn at a time per session: detect filters,
// otherwise call the model and route its output through the command
// dispatcher.
type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	llmProvider  llm.LLMProvider
	queryBuilder *search.QueryBuilder
	dispatcher   *command.Dispatcher
	stateRepo    *memory.ConversationRepository
	modelOptions []llm.Option
	backoffBase  time.Duration
	log          logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	queryBuilder *search.QueryBuilder,
	dispatcher *command.Dispatcher,
	stateRepo *memory.ConversationRepository,
	modelOptions []llm.Option,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:   uowFactory,
		llmProvider:  llmProvider,
		queryBuilder: queryBuilder,
		dispatcher:   dispatcher,
		stateRepo:    stateRepo,
		modelOptions: modelOptions,
		backoffBase:  modelRetryBaseWait,
		log:          log,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultSessionTitle
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	state := conversation.NewState(session.Id.String())
	state.Append(constant.ChatMessageRoleSystem, constant.ChatSystemPromptV1)
	cs.stateRepo.Save(state)

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.SessionOwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, s := range sessions {
		out[i] = &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}
	return out, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if _, err := cs.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.GetChatHistoryResponse, len(messages))
	for i, m := range messages {
		out[i] = &dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if _, err := cs.ownedSession(ctx, uow, userId, req.ChatSessionId); err != nil {
		return nil, err
	}

	state, err := cs.loadState(ctx, uow, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	state.Append(constant.ChatMessageRoleUser, req.Message)
	cs.persistMessage(ctx, uow, req.ChatSessionId, constant.ChatMessageRoleUser, req.Message)

	var reply, route string
	if filter := conversation.DetectFilter(req.Message); filter != nil {
		reply, err = cs.filteredReply(ctx, filter)
		route = RouteFiltered
	} else {
		reply, route, err = cs.modelReply(ctx, state)
	}
	if err != nil {
		return nil, err
	}

	state.Append(constant.ChatMessageRoleAssistant, reply)
	cs.stateRepo.Save(state)
	cs.persistMessage(ctx, uow, req.ChatSessionId, constant.ChatMessageRoleAssistant, reply)

	return &dto.SendChatResponse{Reply: reply, Route: route}, nil
}

// filteredReply answers from the store directly, embedding one summary
// line per matching document. No model call happens on this route.
func (cs *chatService) filteredReply(ctx context.Context, filter *conversation.Filter) (string, error) {
	docs, err := cs.queryBuilder.Filtered(ctx, filter.PersonalityCode, filter.Category)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "조건에 맞는 문서를 찾지 못했습니다.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("조건에 맞는 문서 %d건을 찾았습니다.\n", len(docs)))
	for _, d := range docs {
		summary := d.Summary
		if summary == "" || summary == constant.SummaryUnavailable {
			summary = utils.FirstSentences(d.Content, summaryDisplaySentences)
		}
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", d.Filename, d.Category, summary))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// modelReply calls the model and runs its output through the command
// dispatcher. Model failures never surface as faults: rate limiting is
// retried with exponential backoff up to the ceiling, everything else
// degrades immediately to a fixed reply on the plain route.
func (cs *chatService) modelReply(ctx context.Context, state *conversation.State) (string, string, error) {
	output, err := cs.chatWithRetry(ctx, state.History())
	if err != nil {
		cs.log.Warn("chat", "model call failed", map[string]interface{}{
			"session_id": state.SessionID,
			"error":      err.Error(),
		})
		return constant.ReplyUnavailable, RoutePlain, nil
	}

	cmd := command.Parse(output)
	if cmd.Name == command.PlainReply {
		return cmd.Text, RoutePlain, nil
	}

	result, err := cs.dispatcher.Dispatch(ctx, cmd)
	if err != nil {
		return "", "", err
	}
	return result, RouteCommand, nil
}

func (cs *chatService) chatWithRetry(ctx context.Context, history []llm.Message) (string, error) {
	wait := cs.backoffBase
	for attempt := 0; ; attempt++ {
		output, err := cs.llmProvider.Chat(ctx, history, cs.modelOptions...)
		if err == nil {
			return output, nil
		}
		if !llm.IsRateLimited(err) || attempt >= modelRetryCap {
			return "", err
		}
		time.Sleep(wait)
		wait *= 2
	}
}

// SaveSnapshot persists the live conversation state. Nothing implicit
// writes snapshots; this is the only way state survives a restart.
func (cs *chatService) SaveSnapshot(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if _, err := cs.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	state, found := cs.stateRepo.Get(sessionId.String())
	if !found {
		return fmt.Errorf("no live conversation for session %s", sessionId)
	}

	payload := make([]entity.SnapshotMessage, 0, state.Len())
	for _, m := range state.Messages {
		payload = append(payload, entity.SnapshotMessage{Role: m.Role, Content: m.Content})
	}

	snapshot := entity.ConversationSnapshot{
		Id:        uuid.New(),
		SessionId: sessionId,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	return uow.ConversationSnapshotRepository().Upsert(ctx, &snapshot)
}

func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if _, err := cs.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ConversationSnapshotRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	cs.stateRepo.Delete(sessionId.String())
	return nil
}

// persistMessage writes one turn to the durable history. A failed
// write loses that turn from history but does not fail the chat.
func (cs *chatService) persistMessage(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, role, content string) {
	msg := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &msg); err != nil {
		cs.log.Warn("chat", "failed to persist message", map[string]interface{}{
			"session_id": sessionId.String(),
			"role":       role,
			"error":      err.Error(),
		})
	}
}

func (cs *chatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.SessionOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// loadState restores from the durable snapshot when the in-memory
// state has expired, and seeds a fresh history otherwise.
func (cs *chatService) loadState(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*conversation.State, error) {
	if state, found := cs.stateRepo.Get(sessionId.String()); found {
		return state, nil
	}

	state := conversation.NewState(sessionId.String())
	snapshot, err := uow.ConversationSnapshotRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		for _, m := range snapshot.Payload {
			state.Append(m.Role, m.Content)
		}
	} else {
		state.Append(constant.ChatMessageRoleSystem, constant.ChatSystemPromptV1)
	}
	cs.stateRepo.Save(state)
	return state, nil
}
