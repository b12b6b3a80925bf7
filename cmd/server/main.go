package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/adapters/event"
	httpAdapter "github.com/khoahotran/ai-problem-solver/adapters/http"
	"github.com/khoahotran/ai-problem-solver/adapters/llm"
	"github.com/khoahotran/ai-problem-solver/adapters/persistence"
	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	sessionUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/session"
	solveUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	statsUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/stats"
	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/auth"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
	"github.com/khoahotran/ai-problem-solver/pkg/tracing"
)

func main() {
	fmt.Println("Start AI Problem Solver API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(fmt.Sprintf("FATAL: cannot load config: %v", err))
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "ai-problem-solver-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer tp.Shutdown(context.Background())

	// Initialize dependencies
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
	}

	// Repositories
	var sessionRepo session.Repository
	if cfg.Session.Store == config.StoreRedis {
		lockTTL := cfg.LLM.Timeout + cfg.Fallback.Delay + 10*time.Second
		sessionRepo = persistence.NewRedisSessionRepo(redisClient, cfg.Session.TTL, lockTTL, appLogger)
	} else {
		sessionRepo = persistence.NewMemorySessionRepo(cfg.Session.TTL)
	}

	var statsRepo stats.Repository
	if redisClient != nil {
		statsRepo = persistence.NewRedisStatsRepo(redisClient, appLogger)
	} else {
		statsRepo = persistence.NewMemoryStatsRepo()
	}

	// Services
	llmService, err := llm.NewFromConfig(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM adapter", err)
	}
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	statsUseCase := statsUC.NewStatsUseCase(statsRepo, appLogger)

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Info("No Kafka brokers configured, recording stats in-process")
		publisher = event.NewLocalPublisher(statsUseCase)
	}

	// Use Cases
	dispatcher := solveUC.NewDispatcher(llmService, appLogger)
	fallback := solveUC.NewFallbackSynthesizer(cfg.Fallback.Delay)
	solveUseCase := solveUC.NewSolveUseCase(llmService, publisher, appLogger)
	sessionUseCase := sessionUC.NewSessionUseCase(sessionRepo, dispatcher, fallback, publisher, jwtSvc, appLogger)

	// HTTP Handlers
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Solve:   httpAdapter.NewSolveHandler(solveUseCase, appLogger),
		Session: httpAdapter.NewSessionHandler(sessionUseCase, appLogger),
		Demo:    httpAdapter.NewDemoHandler(),
		Stats:   httpAdapter.NewStatsHandler(statsUseCase, appLogger),
	}, jwtSvc, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+cfg.Fallback.Delay)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
