package bootstrap

import (
	"time"

	"auction-desk-be/internal/config"
	"auction-desk-be/internal/controller"
	"auction-desk-be/internal/handler"
	"auction-desk-be/internal/pkg/logger"
	"auction-desk-be/internal/pkg/serverutils"
	"auction-desk-be/internal/repository/memory"
	"auction-desk-be/internal/repository/unitofwork"
	"auction-desk-be/internal/service"
	"auction-desk-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// liveTopic carries every composed frame from the engine to the hub.
const liveTopic = "live.events"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	CatalogController controller.ICatalogController
	SessionController controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	LiveHandler  *handler.LiveHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	hubLogger := logger.NewIsolatedLogger(cfg.App.HubLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)

	// 3. WebSocket Hub
	hub := websocket.NewHub(hubLogger)
	go hub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(liveTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, liveTopic, hub, sysLogger)

	attemptStore := memory.NewLoginAttemptStore(time.Duration(cfg.Auth.LockoutWindowMins) * time.Minute)
	authService := service.NewAuthService(uowFactory, cfg, attemptStore, sysLogger)
	sessionService := service.NewSessionService(uowFactory, publisherService, sysLogger)
	catalogService := service.NewCatalogService(uowFactory, cfg, sessionService, publisherService, sysLogger)
	buyerService := service.NewBuyerService(uowFactory, sessionService, publisherService, sysLogger)
	logService := service.NewLogService(uowFactory)

	// 5. HTTP Surface
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	authController := controller.NewAuthController(authService, jwtMiddleware)
	catalogController := controller.NewCatalogController(catalogService, buyerService, jwtMiddleware)
	sessionController := controller.NewSessionController(sessionService, logService, jwtMiddleware)
	liveHandler := handler.NewLiveHandler(sessionService, hub, cfg.Auth.JwtSecret, sysLogger)

	return &Container{
		AuthController:    authController,
		CatalogController: catalogController,
		SessionController: sessionController,
		ConsumerService:   consumerService,
		LiveHandler:       liveHandler,
		WebSocketHub:      hub,
	}
}
