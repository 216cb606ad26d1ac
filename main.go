package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srivastan1999/elfsod-2-sub000/internal/api"
	"github.com/srivastan1999/elfsod-2-sub000/internal/api/handler"
	"github.com/srivastan1999/elfsod-2-sub000/internal/api/middleware"
	"github.com/srivastan1999/elfsod-2-sub000/internal/config"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/postgresql"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/rediscache"
	"github.com/srivastan1999/elfsod-2-sub000/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer logger.Sync()

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		logger.Fatal("cannot connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database connected", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	// The category cache is optional; without Redis the listing filter falls
	// back to querying children directly.
	var categoryCache repository.CategoryCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, category cache disabled", zap.Error(err))
		} else {
			categoryCache = rediscache.NewCategoryCache(redisClient, cfg.CategoryCacheTTL)
			logger.Info("category cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	userRepo := postgresql.NewPgUserRepository(db)
	adSpaceRepo := postgresql.NewPgAdSpaceRepository(db)
	categoryRepo := postgresql.NewPgCategoryRepository(db)
	locationRepo := postgresql.NewPgLocationRepository(db)
	publisherRepo := postgresql.NewPgPublisherRepository(db)
	bookingRepo := postgresql.NewPgBookingRepository(db)
	quoteRepo := postgresql.NewPgQuoteRepository(db)

	wsManager := handler.NewWebSocketManager(logger)
	go wsManager.Start()

	// The delegated planner is optional; without an API key suggestions come
	// from the rule-based scorer only.
	var llm service.TextCompleter
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := service.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini client unavailable, planner will be rule-based", zap.Error(err))
		} else {
			llm = geminiClient
			logger.Info("delegated planner enabled", zap.String("model", cfg.GeminiModel))
		}
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	adSpaceService := service.NewAdSpaceService(adSpaceRepo, categoryRepo, locationRepo, categoryCache, logger)
	categorizerService := service.NewCategorizerService(adSpaceRepo, categoryRepo, logger)
	catalogService := service.NewCatalogService(categoryRepo, locationRepo, publisherRepo, categoryCache, logger)
	quoteService := service.NewQuoteService(quoteRepo, adSpaceRepo, bookingRepo, wsManager, cfg.QuoteTaxRate, logger)
	bookingService := service.NewBookingService(bookingRepo, adSpaceRepo, wsManager, logger)
	plannerService := service.NewPlannerService(adSpaceRepo, llm, logger)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go bookingService.RunExpiryWorker(workerCtx)

	router := api.SetupRouter(
		authService,
		adSpaceService,
		categorizerService,
		catalogService,
		quoteService,
		bookingService,
		plannerService,
		authMiddleware,
		wsManager,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	cancelWorker()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
