package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/smart-entry/visitor-service/internal/api/http"
	"github.com/smart-entry/visitor-service/internal/api/http/handlers"
	"github.com/smart-entry/visitor-service/internal/auth"
	"github.com/smart-entry/visitor-service/internal/config"
	"github.com/smart-entry/visitor-service/internal/events"
	"github.com/smart-entry/visitor-service/internal/observability"
	"github.com/smart-entry/visitor-service/internal/persistence"
	"github.com/smart-entry/visitor-service/internal/repository"
	"github.com/smart-entry/visitor-service/internal/service"
	"github.com/smart-entry/visitor-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		visitRepo repository.VisitRepository
		userRepo  repository.UserRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		visitRepo = repository.NewVisitRepository(pool)
		userRepo = repository.NewUserRepository(pool)
	} else {
		visitRepo = repository.NewMemoryVisitRepository()
		userRepo = repository.NewMemoryUserRepository()
	}

	if cfg.App.SeedDemoData {
		hash, err := auth.HashPassword("visitor-demo", cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash seed password", zap.Error(err))
		}
		if err := repository.SeedDemoData(ctx, visitRepo, userRepo, hash); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	var locker persistence.VisitLocker
	if redis.Ping(ctx) == nil {
		locker = persistence.NewRedisVisitLocker(redis.Client, cfg.Redis.LockTTL())
	} else {
		locker = persistence.NewLocalVisitLocker()
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger))

	visitService := service.NewVisitService(service.VisitDependencies{
		VisitRepo:  visitRepo,
		UserRepo:   userRepo,
		Locker:     locker,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(userRepo, dispatcher)
	authService := service.NewAuthService(*cfg, userRepo)
	exporter := service.NewExporter(cfg.Export.IncludeBOM)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Visits:         handlers.NewVisitsHandler(visitService),
		Reports:        handlers.NewReportsHandler(visitService, exporter),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), userRepo),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
