package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceError    = "error"
)

// SolveEvent describes one finished dispatch, whichever path produced it.
type SolveEvent struct {
	SessionID        uuid.UUID `json:"session_id"`
	Mode             string    `json:"mode"`
	Source           string    `json:"source"`
	CreditsExhausted bool      `json:"credits_exhausted"`
	At               time.Time `json:"at"`
}

// Key is the counter field for the event, "<mode>:<source>".
func (e SolveEvent) Key() string {
	return CounterKey(e.Mode, e.Source)
}

func CounterKey(mode, source string) string {
	return fmt.Sprintf("%s:%s", mode, source)
}

// SplitKey reverses CounterKey.
func SplitKey(key string) (mode, source string, ok bool) {
	mode, source, ok = strings.Cut(key, ":")
	return
}

type Repository interface {
	Increment(ctx context.Context, key string) error
	Counts(ctx context.Context) (map[string]int64, error)
}
