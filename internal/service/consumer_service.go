package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fin-advisor-be/internal/dto"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/repository/specification"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/pkg/embedding"
	"fin-advisor-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	embedChunkSize    = 800
	embedChunkOverlap = 100
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[WARN] Document not found, likely deleted: %s", payload.DocumentId)
		msg.Ack()
		return
	}

	chunks := utils.SplitText(doc.Content, embedChunkSize, embedChunkOverlap)
	embeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := cs.embeddingProvider.Generate(chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of %s: %v", i, doc.Id, err)
			msg.Nack()
			return
		}
		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: i,
			ChunkText:  chunk,
			Values:     resp.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	// Replace any chunks from a previous run before inserting.
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		log.Printf("[ERROR] Failed to clear old embeddings for %s: %v", doc.Id, err)
		msg.Nack()
		return
	}
	if len(embeddings) > 0 {
		if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			log.Printf("[ERROR] Failed to store embeddings for %s: %v", doc.Id, err)
			msg.Nack()
			return
		}
	}

	log.Printf("[INFO] Stored %d embedding chunks for %s", len(embeddings), doc.Id)
	msg.Ack()
}
