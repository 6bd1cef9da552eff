package bootstrap

import (
	"log"

	"fin-advisor-be/internal/config"
	"fin-advisor-be/internal/controller"
	"fin-advisor-be/internal/pkg/logger"
	"fin-advisor-be/internal/repository/memory"
	"fin-advisor-be/internal/repository/unitofwork"
	"fin-advisor-be/internal/service"
	"fin-advisor-be/pkg/command"
	"fin-advisor-be/pkg/embedding"
	"fin-advisor-be/pkg/ingest"
	"fin-advisor-be/pkg/llm"
	"fin-advisor-be/pkg/llm/factory"
	pktNats "fin-advisor-be/pkg/nats"
	"fin-advisor-be/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	ProfileController  controller.IProfileController
	LogController      controller.ILogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure handles main.go must close on shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	// Model traffic goes to its own rotating file to keep the main log clean.
	aiLogger := logger.NewIsolatedLogger(cfg.App.AiLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is auxiliary; the engine works without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Domain components
	publisherService := service.NewPublisherService(pubSub, cfg.App.EmbedTopicName)
	stateRepo := memory.NewConversationRepository()

	var eventPublisher ingest.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	pipeline := ingest.NewPipeline(llmProvider, uowFactory, publisherService, eventPublisher, aiLogger)
	queryBuilder := search.NewQueryBuilder(embeddingProvider, uowFactory, sysLogger)
	dispatcher := command.NewDispatcher(pipeline, uowFactory, llmProvider, publisherService, eventPublisher, aiLogger)

	modelOptions := []llm.Option{
		llm.WithTemperature(cfg.Ai.LLMTemperature),
		llm.WithMaxTokens(cfg.Ai.LLMMaxTokens),
	}

	// 5. Services
	documentService := service.NewDocumentService(pipeline, queryBuilder, uowFactory, cfg.Search.Certainty, sysLogger)
	chatService := service.NewChatService(uowFactory, llmProvider, queryBuilder, dispatcher, stateRepo, modelOptions, sysLogger)
	profileService := service.NewProfileService(queryBuilder)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EmbedTopicName, uowFactory, embeddingProvider)

	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		ProfileController:  controller.NewProfileController(profileService),
		LogController:      controller.NewLogController(sysLogger),
		ConsumerService:    consumerService,
		NatsPublisher:      natsPub,
		Logger:             sysLogger,
	}
}
