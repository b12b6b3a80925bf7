package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
	"go.uber.org/zap"
)

const (
	TopicSolveEvents = "solve.events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	SolveEventsWriter messageWriter
	logger            logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'solve.events'
	solveWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicSolveEvents,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Async write to Kafka failed", err, zap.Int("messages", len(messages)))
			}
		},
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		SolveEventsWriter: solveWriter,
		logger:            log,
	}, nil
}

// PublishSolveEvent keys messages by session so one session's events keep
// their order within a partition.
func (c *KafkaProducerClient) PublishSolveEvent(ctx context.Context, evt stats.SolveEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal solve event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.SessionID.String()),
		Value: value,
		Time:  evt.At,
	}
	if err := c.SolveEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write solve event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.SolveEventsWriter != nil {
		if err := c.SolveEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close solve events writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
