package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
)

type Recorder interface {
	Record(ctx context.Context, evt stats.SolveEvent) error
}

// LocalPublisher hands events straight to the stats recorder. The server
// uses it when no Kafka brokers are configured.
type LocalPublisher struct {
	recorder Recorder
}

func NewLocalPublisher(r Recorder) *LocalPublisher {
	return &LocalPublisher{recorder: r}
}

func (p *LocalPublisher) PublishSolveEvent(ctx context.Context, evt stats.SolveEvent) error {
	return p.recorder.Record(ctx, evt)
}

// DecodeSolveEvent parses a message value written by PublishSolveEvent.
func DecodeSolveEvent(value []byte) (stats.SolveEvent, error) {
	var evt stats.SolveEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return evt, fmt.Errorf("unmarshal solve event: %w", err)
	}
	return evt, nil
}
