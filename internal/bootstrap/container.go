package bootstrap

import (
	"log"
	"time"

	"ai-interview-be/internal/config"
	"ai-interview-be/internal/controller"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/mailer"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/file"
	"ai-interview-be/internal/repository/implementation"
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/internal/service"
	"ai-interview-be/internal/websocket"
	"ai-interview-be/pkg/cvparse"
	"ai-interview-be/pkg/interview/dialogue"
	"ai-interview-be/pkg/interviewer"
	"ai-interview-be/pkg/llm/factory"
	"ai-interview-be/pkg/speech"
	"ai-interview-be/pkg/vision"

	pktNats "ai-interview-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	HealthController  controller.IHealthController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Realtime channel
	WebSocketHub   *websocket.Hub
	FrameProcessor *websocket.FrameProcessor

	Logger logger.ILogger
}

// NewContainer wires every dependency. db may be nil; the archive then
// falls back to the JSON file backend.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
		)
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var eventPublisher service.IEventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			eventMonitor := service.NewEventMonitorService(natsSub, sysLogger)
			eventMonitor.Start()
		}
	}

	// 3. Collaborators
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	iv := interviewer.New(llmProvider)
	dialogueController := dialogue.NewController(
		iv,
		time.Duration(cfg.Interview.CollaboratorTimeoutSeconds)*time.Second,
	)

	speechService := speech.NewSimpleService()
	visionService := vision.NewSimpleService(nil)

	// 4. Storage
	sessionRepo := memory.NewSessionRepository()

	var archiveRepo contract.ArchiveRepository
	if db != nil {
		archiveRepo = implementation.NewArchiveRepository(db)
	} else {
		archiveRepo, err = file.NewArchiveRepository(cfg.App.ArchiveDir)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize session archive: %v", err)
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.ArchiveTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ArchiveTopic,
		archiveRepo,
		emailService,
		cfg.SMTP.SummaryTo,
		sysLogger,
	)

	sessionService := service.NewSessionService(
		sessionRepo,
		cvparse.NewParser(),
		dialogueController,
		publisherService,
		eventPublisher,
		sysLogger,
		cfg.Interview.DefaultDurationMinutes,
		cfg.Interview.DefaultTotalQuestions,
	)

	// 6. Realtime channel
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()
	sessionService.SetChannelCloser(wsHub)

	frameProcessor := websocket.NewFrameProcessor(sessionService, speechService, visionService, wsLogger)

	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		HealthController:  controller.NewHealthController(sessionRepo, speechService, visionService),
		ConsumerService:   consumerService,
		WebSocketHub:      wsHub,
		FrameProcessor:    frameProcessor,
		Logger:            sysLogger,
	}
}
