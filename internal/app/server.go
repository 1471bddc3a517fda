// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"autolot-service/internal/config"
	"autolot-service/internal/db"
	domainfeed "autolot-service/internal/domain/feed"
	"autolot-service/internal/feed"
	adminHandler "autolot-service/internal/handlers/admin"
	authHandler "autolot-service/internal/handlers/auth"
	contactHandler "autolot-service/internal/handlers/contact"
	vehicleHandler "autolot-service/internal/handlers/vehicle"
	wsHandler "autolot-service/internal/handlers/websocket"
	"autolot-service/internal/middleware"
	"autolot-service/internal/pkg/notify"
	"autolot-service/internal/pkg/token"
	"autolot-service/internal/repository/postgres"
	authUsecase "autolot-service/internal/service/auth"
	contactUsecase "autolot-service/internal/service/contact"
	inventoryUsecase "autolot-service/internal/service/inventory"
	"autolot-service/internal/store"
	syncer "autolot-service/internal/sync"
	"autolot-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	cancel context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- Local mirror -----
	snapshots, err := store.NewSnapshots(s.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data dir: %w", err)
	}
	mirror := store.New(snapshots, logger)
	if err := mirror.Load(); err != nil {
		return fmt.Errorf("failed to load local mirror: %w", err)
	}

	// ----- WebSocket hub + notifications -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)
	notifier := notify.Multi{notify.NewLogNotifier(logger), hub}

	// ----- Remote store (optional) -----
	var vehicleRepo *postgres.VehicleRepository
	var txnRepo *postgres.TransactionRepository
	var remoteDB *postgres.DB

	if s.cfg.RemoteEnabled() {
		pool, err := db.ConnectPostgres(ctx, s.cfg.RemoteDatabaseURL)
		if err != nil {
			logger.Warn("remote store unreachable, running local-only", zap.Error(err))
			notifier.Notify("Modo local", "Servidor remoto indisponível; alterações ficam apenas neste dispositivo.")
		} else {
			remoteDB = postgres.NewDB(pool)
			if err := remoteDB.EnsureSchema(ctx); err != nil {
				logger.Warn("failed to ensure remote schema", zap.Error(err))
			}
			if err := remoteDB.Probe(ctx); err != nil {
				logger.Warn("remote probe failed, running local-only", zap.Error(err))
				notifier.Notify("Modo local", "Servidor remoto indisponível; alterações ficam apenas neste dispositivo.")
				remoteDB.Close()
				remoteDB = nil
			} else {
				vehicleRepo = postgres.NewVehicleRepository(pool)
				txnRepo = postgres.NewTransactionRepository(pool)
				logger.Info("remote store connected")
			}
		}
	} else {
		logger.Info("remote store not configured, running local-only")
	}

	// ----- Change feed (optional) -----
	var publisher *feed.Publisher
	var subscriber *feed.Subscriber

	if s.cfg.FeedEnabled() {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			logger.Warn("change feed unavailable", zap.Error(err))
		} else {
			publisher = feed.NewPublisher(redisClient, logger)
			subscriber = feed.NewSubscriber(redisClient, logger)
		}
	}

	// ----- Synchronizer -----
	synchronizer := syncer.New(mirror, vehicleRepo, txnRepo, notifier, logger)
	if vehicleRepo != nil {
		synchronizer.Reconcile(ctx)
	}
	if subscriber != nil {
		go subscriber.Run(ctx, func(ev *domainfeed.Event) {
			if synchronizer.Apply(ev) {
				hub.BroadcastEvent(ev)
			}
		})
	}

	// ----- Services -----
	tokens := token.NewManager(s.cfg.TokenSecret, "autolot-service", "autolot-admin", s.cfg.TokenTTL)
	authService := authUsecase.NewService(s.cfg.AdminEmail, s.cfg.AdminPasswordHash, tokens, logger)
	contactService := contactUsecase.NewService(
		s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass,
		s.cfg.SMTPFromName, s.cfg.SMTPSecure, s.cfg.ContactInbox, logger,
	)

	var vehicleRemote inventoryUsecase.VehicleRemote
	var txnRemote inventoryUsecase.TransactionRemote
	if vehicleRepo != nil {
		vehicleRemote = vehicleRepo
		txnRemote = txnRepo
	}
	var eventPublisher inventoryUsecase.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	inventoryService := inventoryUsecase.NewService(mirror, vehicleRemote, txnRemote, eventPublisher, notifier, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		VehicleHandler: vehicleHandler.NewVehicleHandler(inventoryService),
		AdminHandler:   adminHandler.NewAdminHandler(inventoryService),
		AuthHandler:    authHandler.NewAuthHandler(authService),
		ContactHandler: contactHandler.NewContactHandler(contactService),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, authService, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authService),
	}

	s.engine.Use(gin.Logger())
	s.engine.Use(middleware.RecoveryMiddleware(logger))
	SetupRouter(s.engine, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown stops the hub and feed subscription.
func (s *Server) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}
