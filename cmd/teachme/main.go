package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/config"
	"github.com/Anaselll/TeachMeApp/pkg/dependency_container"
	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache"
	"github.com/Anaselll/TeachMeApp/pkg/infra/cache/event"
	"github.com/Anaselll/TeachMeApp/pkg/infra/database"
	infraLogger "github.com/Anaselll/TeachMeApp/pkg/infra/logger"
	_ "github.com/Anaselll/TeachMeApp/pkg/infra/migrations"
	"github.com/Anaselll/TeachMeApp/pkg/middleware"
	"github.com/Anaselll/TeachMeApp/pkg/server"
	"github.com/Anaselll/TeachMeApp/pkg/server/router"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// @title TeachMe Session API
// @version 0.4.0
// @description Tutoring session lifecycle and real-time messaging.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	command := getCommand()
	logger := infraLogger.NewLogger(command)

	if err := config.Load(configPath()); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	switch command {
	case "token":
		if err := printToken(cfg, os.Args[2:]); err != nil {
			logger.Fatal(err)
		}
	case "chat":
		if err := chat(cfg, logger, os.Args[2:]); err != nil {
			logger.Fatal(err)
		}
	default:
		if err := serve(cfg, logger); err != nil {
			logger.WithError(err).Fatal("server stopped with error")
		}
	}
}

func serve(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	nodeID := cfg.Server.NodeID
	if nodeID == "" {
		nodeID = uuid.NewString()
	}

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:                   cfg,
		Logger:                logger,
		DB:                    db,
		NodeID:                nodeID,
		EventsRegistry:        event.Registry,
		InitializeMemoryCache: initializeMemoryCache,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer container.Dispatcher.Shutdown()

	apiRouter := router.NewAPIRouter(router.APIRouterDI{
		Global: middleware.NewTransport(
			container.PanicRecoverMiddleware,
			container.CORSGlobalMiddleware,
			container.MetricsMiddleware,
		),
		AuthMiddleware:      container.AuthMiddleware,
		WebsocketMiddleware: container.WebSocketMiddleware,
		HandlerTransport:    container.HandlerTransport,
		WSHandlerTransport:  container.WSHandlerTransport,
		SwaggerURL:          "doc.json",
	})

	srv := server.NewAPIServer(server.APIServerDI{
		Config:  cfg,
		Logger:  logger,
		Routers: []router.ServerRouter{apiRouter},
	})

	logger.WithFields(logrus.Fields{
		"node_id":    nodeID,
		"cross_node": cfg.Relay.CrossNode,
	}).Info("starting teachme")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run()
	})
	if cfg.Relay.CrossNode {
		g.Go(func() error {
			container.RedisListener.Listen(gctx, container.EventsChannel)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		container.Hub.Shutdown()
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}

// printToken mints a bearer token for local testing: teachme token <user_id> [email].
func printToken(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: teachme token <user_id> [email]")
	}
	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	email := ""
	if len(args) > 1 {
		email = args[1]
	}
	token, err := jwt.NewJwtManager(&cfg.Server).CreateToken(userID, email)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func initializeMemoryCache(cacheInstance cache.Client) {
	_ = cacheInstance.CreateTTLMap(cache.UserTTLName, common.UserCacheTTL)
}

func getCommand() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return "serve"
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "./config"
}
