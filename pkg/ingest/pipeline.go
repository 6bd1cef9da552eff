package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fin-advisor-be/internal/constant"
	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/pkg/classifier"
	"fin-advisor-be/pkg/events"
	"fin-advisor-be/pkg/llm"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeRejected  Outcome = "rejected"
)

const (
	summarizeRetryCap = 3
	summarizeBaseWait = 1 * time.Second
)

type Result struct {
	Outcome  Outcome
	Category classifier.Category
	Document *entity.Document
}

// MessagePublisher queues work for the embedding consumer.
type MessagePublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// EventPublisher emits domain events to the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Pipeline turns raw text into a stored, classified document. The
// filename duplicate check and the create are two round-trips with no
// isolation, so concurrent ingestion of one filename can race.
type Pipeline struct {
	llmProvider    llm.LLMProvider
	uowFactory     unitofwork.RepositoryFactory
	publisher      MessagePublisher
	eventPublisher EventPublisher
	log            logger.ILogger
	backoffBase    time.Duration
}

func NewPipeline(
	llmProvider llm.LLMProvider,
	uowFactory unitofwork.RepositoryFactory,
	publisher MessagePublisher,
	eventPublisher EventPublisher,
	log logger.ILogger,
) *Pipeline {
	return &Pipeline{
		llmProvider:    llmProvider,
		uowFactory:     uowFactory,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		log:            log,
		backoffBase:    summarizeBaseWait,
	}
}

// Ingest rejects blank content, classifies, summarizes, then creates the
// document unless one with the same filename already exists.
func (p *Pipeline) Ingest(ctx context.Context, filename, rawText string) (*Result, error) {
	normalized := Normalize(rawText)
	if strings.TrimSpace(filename) == "" || normalized == "" {
		return &Result{Outcome: OutcomeRejected}, nil
	}

	category := classifier.Classify(normalized)
	summary := p.summarize(ctx, normalized)

	uow := p.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.DocumentRepository().FindOne(ctx, specification.ByFilename{Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if existing != nil {
		return &Result{
			Outcome:  OutcomeDuplicate,
			Category: classifier.Category(existing.Category),
			Document: existing,
		}, nil
	}

	doc := entity.Document{
		Id:        uuid.New(),
		Filename:  filename,
		Content:   normalized,
		Summary:   summary,
		Category:  string(category),
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	p.notifyCreated(ctx, &doc)

	return &Result{
		Outcome:  OutcomeCreated,
		Category: category,
		Document: &doc,
	}, nil
}

// summarize retries with exponential backoff on rate limiting only.
// After the retry ceiling it degrades to a fixed placeholder rather
// than failing the ingestion.
func (p *Pipeline) summarize(ctx context.Context, content string) string {
	if p.llmProvider == nil {
		return ""
	}

	prompt := constant.SummarizePromptV1 + "\n\n" + content
	wait := p.backoffBase
	for attempt := 0; ; attempt++ {
		summary, err := p.llmProvider.Generate(ctx, prompt)
		if err == nil {
			return strings.TrimSpace(summary)
		}
		if !llm.IsRateLimited(err) || attempt >= summarizeRetryCap {
			p.log.Warn("ingest", "summarization failed", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			return constant.SummaryUnavailable
		}
		time.Sleep(wait)
		wait *= 2
	}
}

func (p *Pipeline) notifyCreated(ctx context.Context, doc *entity.Document) {
	if p.publisher != nil {
		payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
		if err == nil {
			err = p.publisher.Publish(ctx, payload)
		}
		if err != nil {
			p.log.Warn("ingest", "failed to queue embedding job", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	if p.eventPublisher != nil {
		evt := events.NewDocumentIngested(doc.Id.String(), doc.Filename, doc.Category)
		if err := p.eventPublisher.Publish(ctx, evt); err != nil {
			p.log.Warn("ingest", "failed to publish DOCUMENT_INGESTED", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       err.Error(),
			})
		}
	}
}
