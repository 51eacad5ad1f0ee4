package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"image-gallery-api/config"
	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/application/services"
	"image-gallery-api/internal/infrastructure/db/postgres"
	galleryRepo "image-gallery-api/internal/infrastructure/db/postgres/gallery"
	imageRepo "image-gallery-api/internal/infrastructure/db/postgres/image"
	userRepo "image-gallery-api/internal/infrastructure/db/postgres/user"
	"image-gallery-api/internal/infrastructure/jwt"
	"image-gallery-api/internal/infrastructure/metrics"
	"image-gallery-api/internal/infrastructure/mq"
	"image-gallery-api/internal/infrastructure/storage"
	"image-gallery-api/internal/interface/api/rest"
	"image-gallery-api/internal/interface/api/rest/middleware"
	"image-gallery-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	backend    ports.StorageBackend
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// storage backend
	backend, err := newStorageBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage backend", zap.Error(err))
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	//rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		backend:    backend,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

// newStorageBackend wires the configured byte store behind the common
// backend port. Everything above this point only ever sees opaque
// storage keys.
func newStorageBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (ports.StorageBackend, error) {
	gen, err := storage.NewGenerator(cfg.Upload)
	if err != nil {
		return nil, err
	}

	switch cfg.Upload.Backend {
	case config.StorageBackendLocal:
		return storage.NewLocal(cfg.Upload, gen, logger)
	case config.StorageBackendS3:
		return storage.NewS3(ctx, cfg.S3, gen, logger)
	case config.StorageBackendMemory:
		return storage.NewMemory(gen, false), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Upload.Backend)
	}
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	users := userRepo.NewRepository(a.db)
	galleries := galleryRepo.NewRepository(a.db)
	images := imageRepo.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	whitelist := storage.NewWhitelist(a.cfg.Upload.Whitelist)
	userService := services.NewUserService(users, a.mCounter)
	authService := services.NewAuthService(jwtService, userService, a.cfg.App.ClientSecretHash)
	galleryService := services.NewGalleryService(galleries, users, a.mCounter)
	imageService := services.NewImageService(
		a.logger, a.backend, whitelist, images, users, galleries, a.mq, a.mCounter, a.cfg.App.BaseURL,
	)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, a.cfg.App.BaseURL)
	rest.NewUserController(a.router, userService, imageService, a.logger, jwtService, a.cfg.App.BaseURL)
	rest.NewGalleryController(a.router, galleryService, imageService, a.logger, jwtService, a.cfg.App.BaseURL)
	rest.NewImageController(a.router, imageService, a.logger, jwtService, a.cfg.App.BaseURL)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
