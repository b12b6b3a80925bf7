package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

type Source string

const (
	SourceNone     Source = ""
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("a request is already in flight for this session")
)

// Session is the per-client view state: the
// current problem, the last result, the loading flag and the credit flag.
type Session struct {
	ID         uuid.UUID          `json:"id"`
	Problem    string             `json:"problem"`
	Mode       solution.Mode      `json:"mode"`
	Result     *solution.Solution `json:"result"`
	Source     Source             `json:"source"`
	Loading    bool               `json:"loading"`
	HasCredits bool               `json:"has_credits"`
	Error      string             `json:"error"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func New(now time.Time) *Session {
	return &Session{
		ID:         uuid.New(),
		HasCredits: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Begin moves the session into the dispatching state.
func (s *Session) Begin(problem string, mode solution.Mode, now time.Time) {
	s.Problem = problem
	s.Mode = mode
	s.Loading = true
	s.Error = ""
	s.UpdatedAt = now
}

func (s *Session) Complete(result *solution.Solution, source Source, now time.Time) {
	s.Result = result
	s.Source = source
	s.Loading = false
	s.UpdatedAt = now
}

func (s *Session) Fail(message string, now time.Time) {
	s.Error = message
	s.Loading = false
	s.UpdatedAt = now
}

// MarkCreditsExhausted is one-way: nothing sets HasCredits back to true.
func (s *Session) MarkCreditsExhausted() {
	s.HasCredits = false
}

type Repository interface {
	Create(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	// TryAcquire atomically claims the single in-flight slot of a session
	// and returns the token that owns it. It reports false when another
	// request already holds the slot.
	TryAcquire(ctx context.Context, id uuid.UUID) (token string, acquired bool, err error)
	// Release frees the slot only while token still owns it.
	Release(ctx context.Context, id uuid.UUID, token string) error
}
