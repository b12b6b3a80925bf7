package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/adapters/event"
	"github.com/khoahotran/ai-problem-solver/adapters/persistence"
	statsUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/stats"
	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

func main() {
	fmt.Println("Starting AI Problem Solver Stats Worker...")

	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(fmt.Sprintf("FATAL: cannot load config: %v", err))
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker needs KAFKA_BROKERS", nil)
	}
	if cfg.Redis.Addr == "" {
		appLogger.Fatal("Worker needs REDIS_ADDR to store counters", nil)
	}

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Worker Use Case
	statsUseCase := statsUC.NewStatsUseCase(persistence.NewRedisStatsRepo(redisClient, appLogger), appLogger)

	// Kafka Consumer
	solveConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicSolveEvents,
		GroupID:  "solve-stats-group",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer solveConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicSolveEvents))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		msg, err := solveConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		evt, err := event.DecodeSolveEvent(msg.Value)
		if err != nil {
			l.Error("Failed to decode event, skipping", err)
			commitMessage(ctx, solveConsumer, msg, l)
			continue
		}

		if err := statsUseCase.Record(ctx, evt); err != nil {
			l.Error("Failed to record solve event", err, zap.String("counter", evt.Key()))
			continue
		}

		commitMessage(ctx, solveConsumer, msg, l)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, l logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		l.Error("Failed to commit message", err)
	}
}
