package command

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fin-advisor-be/internal/constant"
	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/pkg/events"
	"fin-advisor-be/pkg/ingest"
	"fin-advisor-be/pkg/llm"
	"fin-advisor-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	groupingBatchLimit   = 50
	groupingContentRunes = 300

	groupingRetryCap      = 3
	groupingRetryBaseWait = 1 * time.Second
)

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// Dispatcher executes decoded commands against the document store.
// Find-then-mutate is two round-trips with no isolation, same caveat
// as the ingestion duplicate check.
type Dispatcher struct {
	pipeline       *ingest.Pipeline
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	publisher      ingest.MessagePublisher
	eventPublisher ingest.EventPublisher
	log            logger.ILogger
	backoffBase    time.Duration
}

func NewDispatcher(
	pipeline *ingest.Pipeline,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	publisher ingest.MessagePublisher,
	eventPublisher ingest.EventPublisher,
	log logger.ILogger,
) *Dispatcher {
	return &Dispatcher{
		pipeline:       pipeline,
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		log:            log,
		backoffBase:    groupingRetryBaseWait,
	}
}

// Dispatch runs the command and returns user-facing result text.
// Lookup misses are messages, not errors.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Name {
	case AddDocument:
		return d.addDocument(ctx, cmd)
	case DeleteDocument:
		return d.deleteDocument(ctx, cmd)
	case UpdateDocument:
		return d.updateDocument(ctx, cmd)
	case PerformGroupingAndMapping:
		return d.groupAndMap(ctx)
	default:
		return cmd.Text, nil
	}
}

func (d *Dispatcher) addDocument(ctx context.Context, cmd Command) (string, error) {
	result, err := d.pipeline.Ingest(ctx, cmd.Filename, cmd.Content)
	if err != nil {
		return "", err
	}

	switch result.Outcome {
	case ingest.OutcomeDuplicate:
		return fmt.Sprintf("'%s' 문서가 이미 존재합니다.", cmd.Filename), nil
	case ingest.OutcomeRejected:
		return "빈 문서는 추가할 수 없습니다.", nil
	default:
		return fmt.Sprintf("'%s' 문서를 추가했습니다. (분류: %s)", cmd.Filename, result.Category), nil
	}
}

// deleteDocument removes the first document matching the filename.
// Filenames are not unique; when several match, retrieval order picks
// the victim.
func (d *Dispatcher) deleteDocument(ctx context.Context, cmd Command) (string, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByFilename{Filename: cmd.Filename})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return fmt.Sprintf("'%s' 문서를 찾을 수 없습니다.", cmd.Filename), nil
	}

	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return "", err
	}
	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return "", err
	}

	d.publishEvent(ctx, events.NewDocumentDeleted(doc.Id.String(), doc.Filename))
	return fmt.Sprintf("'%s' 문서를 삭제했습니다.", cmd.Filename), nil
}

// updateDocument overwrites content only. Category and summary keep
// their ingestion-time values.
func (d *Dispatcher) updateDocument(ctx context.Context, cmd Command) (string, error) {
	normalized := ingest.Normalize(cmd.Content)
	if normalized == "" {
		return "빈 내용으로는 수정할 수 없습니다.", nil
	}

	uow := d.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByFilename{Filename: cmd.Filename})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return fmt.Sprintf("'%s' 문서를 찾을 수 없습니다.", cmd.Filename), nil
	}

	doc.Content = normalized
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return "", err
	}

	// Stale chunks out, fresh embedding job in.
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return "", err
	}
	d.queueEmbedding(ctx, doc.Id)
	d.publishEvent(ctx, events.NewDocumentUpdated(doc.Id.String(), doc.Filename))

	return fmt.Sprintf("'%s' 문서를 수정했습니다.", cmd.Filename), nil
}

// groupAndMap sends one combined prompt over a bounded batch of
// documents and persists each blank-line-separated block of the
// response as a group. Numbering restarts every run.
func (d *Dispatcher) groupAndMap(ctx context.Context) (string, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: groupingBatchLimit},
	)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "그룹화할 문서가 없습니다.", nil
	}

	var sb strings.Builder
	sb.WriteString(constant.GroupingPromptHeader)
	sb.WriteString("\n\n")
	for _, doc := range docs {
		sb.WriteString(fmt.Sprintf("파일명: %s\n내용: %s\n\n", doc.Filename, utils.Truncate(doc.Content, groupingContentRunes)))
	}
	sb.WriteString(constant.GroupingPromptFooter)

	response, err := d.generateWithRetry(ctx, sb.String())
	if err != nil {
		d.log.Warn("command", "grouping generation failed", map[string]interface{}{
			"documents": len(docs),
			"error":     err.Error(),
		})
		return constant.GroupingUnavailable, nil
	}

	runId := uuid.New()
	var groups []*entity.GroupedDocument
	for _, block := range blankLinePattern.Split(response, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		groups = append(groups, &entity.GroupedDocument{
			Id:        uuid.New(),
			GroupName: fmt.Sprintf("group_%d", len(groups)+1),
			Content:   block,
			RunId:     runId,
			CreatedAt: time.Now(),
		})
	}
	if err := uow.GroupedDocumentRepository().CreateBulk(ctx, groups); err != nil {
		return "", err
	}

	d.publishEvent(ctx, events.NewDocumentsGrouped(runId.String(), len(groups)))
	return response, nil
}

// generateWithRetry backs off exponentially on rate limiting only,
// mirroring the summarization retry during ingestion.
func (d *Dispatcher) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	wait := d.backoffBase
	for attempt := 0; ; attempt++ {
		response, err := d.llmProvider.Generate(ctx, prompt)
		if err == nil {
			return response, nil
		}
		if !llm.IsRateLimited(err) || attempt >= groupingRetryCap {
			return "", err
		}
		time.Sleep(wait)
		wait *= 2
	}
}

func (d *Dispatcher) queueEmbedding(ctx context.Context, documentId uuid.UUID) {
	if d.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: documentId})
	if err == nil {
		err = d.publisher.Publish(ctx, payload)
	}
	if err != nil {
		d.log.Warn("command", "failed to queue embedding job", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}
}

func (d *Dispatcher) publishEvent(ctx context.Context, evt events.Event) {
	if d.eventPublisher == nil {
		return
	}
	if err := d.eventPublisher.Publish(ctx, evt); err != nil {
		d.log.Warn("command", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
