package dependency_container

import (
	"fmt"
	"reflect"

	appMessage "github.com/Anaselll/TeachMeApp/pkg/app/message"
	appRelay "github.com/Anaselll/TeachMeApp/pkg/app/relay"
	appSession "github.com/Anaselll/TeachMeApp/pkg/app/session"
	appTelemetry "github.com/Anaselll/TeachMeApp/pkg/app/telemetry"
	appUser "github.com/Anaselll/TeachMeApp/pkg/app/user"
	"github.com/Anaselll/TeachMeApp/pkg/config"
	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	domainOffer "github.com/Anaselll/TeachMeApp/pkg/domain/offer"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	domainUser "github.com/Anaselll/TeachMeApp/pkg/domain/user"
	handlers "github.com/Anaselll/TeachMeApp/pkg/handlers/http"
	wsHandlers "github.com/Anaselll/TeachMeApp/pkg/handlers/websocket"
	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt"
	"github.com/Anaselll/TeachMeApp/pkg/infra/breaker"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/channel"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/event"
	"github.com/Anaselll/TeachMeApp/pkg/infra/database"
	"github.com/Anaselll/TeachMeApp/pkg/infra/repository"
	infraTelemetry "github.com/Anaselll/TeachMeApp/pkg/infra/telemetry"
	"github.com/Anaselll/TeachMeApp/pkg/infra/telemetry/kafka"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/Anaselll/TeachMeApp/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type Container struct {
	Cache              cache.Client
	RedisListener      cache.EventListener
	RedisPublisher     cache.EventPublisher
	EventsChannel      channel.Channel
	Hub                appRelay.Hub
	Dispatcher         infraTelemetry.Dispatcher
	JWTManager         jwt.Manager
	HandlerTransport   *handlers.HandlerTransport
	WSHandlerTransport wsHandlers.HandlerTransport

	PanicRecoverMiddleware middleware.Middleware
	CORSGlobalMiddleware   middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	AuthMiddleware         middleware.Middleware
	WebSocketMiddleware    middleware.Middleware

	UserRepository    domainUser.Repository
	OfferRepository   domainOffer.Repository
	SessionRepository domainSession.Repository
	MessageRepository domainMessage.Repository
}

type ContainerDI struct {
	Cfg                   *config.Config
	Logger                *logrus.Logger
	DB                    *database.DB
	NodeID                string
	EventsRegistry        map[string]reflect.Type
	InitializeMemoryCache func(cacheInstance cache.Client)
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg

	cacheConfig := cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}
	cacheInstance, err := cache.NewClient(cacheConfig, di.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %v", err)
	}
	if di.InitializeMemoryCache != nil {
		di.InitializeMemoryCache(cacheInstance)
	}

	// telemetry
	dispatcher, err := newDispatcher(di.Logger, cfg.Telemetry)
	if err != nil {
		return nil, err
	}

	// relay backbone
	eventsChannel := channel.Channel(cfg.Relay.Channel)
	redisListener := cache.NewRedisEventListener(di.Logger, cacheInstance, di.EventsRegistry)
	var redisPublisher cache.EventPublisher
	if cfg.Relay.CrossNode {
		publishBreaker := breaker.NewCircuitBreaker(
			"relay-publish",
			cfg.Relay.BreakerTimeout,
			cfg.Relay.BreakerMaxFailures,
			di.Logger,
		)
		redisPublisher = cache.NewBreakerEventPublisher(
			cache.NewRedisEventPublisher(cacheInstance, eventsChannel),
			publishBreaker,
		)
	}
	hub := appRelay.NewHub(di.Logger, di.NodeID, redisPublisher)
	cache.RegisterEventSubscriber[event.RelayMessageEvent](redisListener, appRelay.NewRelayMessageSubscriber(hub, di.NodeID))
	cache.RegisterEventSubscriber[event.SessionActivatedEvent](redisListener, appRelay.NewSessionActivatedSubscriber(hub, di.NodeID))

	// repository
	userRepository := repository.NewUserRepository(di.DB.DB)
	offerRepository := repository.NewOfferRepository(di.DB.DB)
	sessionRepository := repository.NewSessionRepository(di.DB.DB)
	messageRepository := repository.NewMessageRepository(di.DB.DB)

	// service
	var rateLimiter cache.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = cache.NewRateLimiter(cacheInstance.RedisClient(), cfg.RateLimit.Limit, cfg.RateLimit.Window, nil)
	}
	idempotencyStore := cache.NewIdempotencyStore(
		cacheInstance,
		cfg.Session.RequestTimeout+appSession.IdempotencyFinishTimeout,
		cfg.Session.IdempotencyTTL,
	)

	userFinder := appUser.NewFinder(di.Logger, userRepository, cacheInstance.GetTTLMap(cache.UserTTLName))
	participantGuard := appSession.NewParticipantGuard(di.Logger, sessionRepository)
	hydrator := appSession.NewHydrator(di.Logger, offerRepository, userFinder)
	sessionCreator := appSession.NewCreator(di.Logger, sessionRepository, offerRepository, idempotencyStore, dispatcher)
	sessionLister := appSession.NewLister(di.Logger, sessionRepository, hydrator)
	readinessSignaler := appSession.NewReadinessSignaler(di.Logger, sessionRepository, participantGuard, dispatcher, hub)
	statusUpdater := appSession.NewStatusUpdater(di.Logger, sessionRepository, participantGuard)
	messageAppender := appMessage.NewAppender(
		di.Logger,
		messageRepository,
		participantGuard,
		rateLimiter,
		dispatcher,
		cfg.Session.MaxMessageLength,
	)
	messageLister := appMessage.NewLister(di.Logger, messageRepository, participantGuard, cfg.Session.DefaultPageSize)

	jwtManager := jwt.NewJwtManager(&cfg.Server)

	// WebSocket handler transport
	wsHandlerTransport := &wsHandlers.HandlerTransportDTO{
		RelayHandler: wsHandlers.NewRelayHandler(
			di.Logger,
			hub,
			participantGuard,
			cfg.WebSocket,
			cfg.Session.RequestTimeout,
		),
	}

	// Handler Transport
	base := handlers.NewBaseHandler(di.Logger, cfg.Session.RequestTimeout)
	handlerTransport := &handlers.HandlerTransport{
		// Session
		CreateSessionHandler:       handlers.NewCreateSessionHandler(base, di.Logger, sessionCreator),
		ListSessionsHandler:        handlers.NewListSessionsHandler(base, di.Logger, sessionLister),
		SignalReadyHandler:         handlers.NewSignalReadyHandler(base, di.Logger, readinessSignaler),
		UpdateSessionStatusHandler: handlers.NewUpdateSessionStatusHandler(base, di.Logger, statusUpdater),
		// Message
		ListMessagesHandler: handlers.NewListMessagesHandler(base, di.Logger, messageLister, cfg.Session.MaxPageSize),
		SendMessageHandler:  handlers.NewSendMessageHandler(base, di.Logger, messageAppender),
		// System
		GetVersionHandler: handlers.NewGetVersionHandler(di.Logger),
		HealthHandler: handlers.NewHealthHandler(di.Logger, map[string]handlers.Pinger{
			"database": di.DB,
			"redis":    cacheInstance,
		}),
	}

	container := &Container{
		Cache:              cacheInstance,
		RedisListener:      redisListener,
		RedisPublisher:     redisPublisher,
		EventsChannel:      eventsChannel,
		Hub:                hub,
		Dispatcher:         dispatcher,
		JWTManager:         jwtManager,
		HandlerTransport:   handlerTransport,
		WSHandlerTransport: wsHandlerTransport,

		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		CORSGlobalMiddleware: middleware.NewCORSGlobalMiddleware(
			middleware.ParseOrigins(cfg.Server.CorsOrigins),
			[]string{"GET", "POST", "PATCH", "OPTIONS"},
			false,
			[]string{"Content-Length", "Retry-After", "X-Next-Cursor", "X-Request-Id", "Idempotent-Replayed"},
			"12h",
		),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(di.Logger, cfg.Metrics.Enabled),
		AuthMiddleware:      middleware.NewAuthMiddleware(di.Logger, jwtManager),
		WebSocketMiddleware: middleware.NewWebsocketMiddleware(di.Logger, infraWebsocket.NewSemaphore(cfg.WebSocket.MaxConnections)),

		UserRepository:    userRepository,
		OfferRepository:   offerRepository,
		SessionRepository: sessionRepository,
		MessageRepository: messageRepository,
	}

	return container, nil
}

// newDispatcher wires the configured lifecycle exporter behind a worker pool.
// Export stays off unless telemetry is enabled.
func newDispatcher(logger *logrus.Logger, cfg config.TelemetryConfig) (infraTelemetry.Dispatcher, error) {
	if !cfg.Enabled {
		return infraTelemetry.NewNoopDispatcher(), nil
	}
	builder := appTelemetry.NewExporterBuilder(infraTelemetry.NewExporterLocator(
		infraTelemetry.WithExporter(kafka.NewKafkaExporter()),
	))
	exporter, err := builder.Build(cfg)
	if err != nil {
		return nil, err
	}
	dispatcher := infraTelemetry.NewDispatcher(logger, exporter)
	dispatcher.StartWorkers(cfg.Workers)
	logger.WithField("exporter", exporter.Name()).Info("lifecycle event export enabled")
	return dispatcher, nil
}
