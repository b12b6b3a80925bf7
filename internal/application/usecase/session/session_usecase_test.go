package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/apperror"
	"github.com/khoahotran/ai-problem-solver/pkg/auth"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

type scriptedLLM struct {
	mu      sync.Mutex
	calls   int
	err     error
	text    string
	record  *solution.Solution
	started chan struct{}
	release chan struct{}
	onCall  func()
}

func (f *scriptedLLM) wait(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	started, release, onCall := f.started, f.release, f.onCall
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if onCall != nil {
		onCall()
	}
	return f.err
}

func (f *scriptedLLM) GenerateText(ctx context.Context, _ string) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	return f.text, nil
}

func (f *scriptedLLM) GenerateSolution(ctx context.Context, _ string) (*solution.Solution, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.record, nil
}

func (f *scriptedLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]session.Session
	locks    map[uuid.UUID]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[uuid.UUID]session.Session),
		locks:    make(map[uuid.UUID]string),
	}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = snapshot(s)
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	c := snapshot(&s)
	return &c, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return session.ErrSessionNotFound
	}
	r.sessions[s.ID] = snapshot(s)
	return nil
}

func (r *fakeSessionRepo) TryAcquire(_ context.Context, id uuid.UUID) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return "", false, session.ErrSessionNotFound
	}
	if r.locks[id] != "" {
		return "", false, nil
	}
	token := uuid.NewString()
	r.locks[id] = token
	return token, true, nil
}

func (r *fakeSessionRepo) Release(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locks[id] == token {
		delete(r.locks, id)
	}
	return nil
}

func (r *fakeSessionRepo) locked(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locks[id] != ""
}

func snapshot(s *session.Session) session.Session {
	c := *s
	c.Result = s.Result.Clone()
	return c
}

type capturePublisher struct {
	mu     sync.Mutex
	events []stats.SolveEvent
}

func (p *capturePublisher) PublishSolveEvent(_ context.Context, evt stats.SolveEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func newUseCase(llm *scriptedLLM, fallbackDelay time.Duration) (*SessionUseCase, *capturePublisher) {
	uc, pub, _ := newUseCaseWithRepo(llm, fallbackDelay)
	return uc, pub
}

func newUseCaseWithRepo(llm *scriptedLLM, fallbackDelay time.Duration) (*SessionUseCase, *capturePublisher, *fakeSessionRepo) {
	log := logger.NewNopLogger()
	pub := &capturePublisher{}
	repo := newFakeSessionRepo()
	uc := NewSessionUseCase(
		repo,
		solve.NewDispatcher(llm, log),
		solve.NewFallbackSynthesizer(fallbackDelay),
		pub,
		auth.NewJWTService("test-secret", time.Hour),
		log,
	)
	return uc, pub, repo
}

func createSession(t *testing.T, uc *SessionUseCase) *session.Session {
	t.Helper()
	out, err := uc.Create(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	return out.Session
}

func TestSubmitStoresAIResult(t *testing.T) {
	record := &solution.Solution{Category: solution.CategoryBusiness, Complexity: solution.ComplexityAdvanced, Solution: "go to market"}
	uc, pub := newUseCase(&scriptedLLM{record: record}, 0)
	s := createSession(t, uc)

	got, err := uc.Submit(context.Background(), SubmitInput{SessionID: s.ID, Problem: "Launch plan", Mode: solution.ModeSolver})
	require.NoError(t, err)
	assert.Equal(t, session.SourceAI, got.Source)
	assert.Equal(t, record, got.Result)
	assert.False(t, got.Loading)
	assert.True(t, got.HasCredits)

	stored, err := uc.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch plan", stored.Problem)
	assert.Equal(t, "go to market", stored.Result.Solution)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "solver:ai", pub.events[0].Key())
}

func TestSubmitFallsBackOnProviderFailure(t *testing.T) {
	uc, pub := newUseCase(&scriptedLLM{err: errors.New("dial tcp: i/o timeout")}, time.Millisecond)
	s := createSession(t, uc)

	got, err := uc.Submit(context.Background(), SubmitInput{SessionID: s.ID, Problem: "Reverse a linked list", Mode: solution.ModeCode})
	require.NoError(t, err)

	assert.Equal(t, session.SourceFallback, got.Source)
	assert.Equal(t, solution.CategoryTechnical, got.Result.Category)
	assert.Equal(t, solution.ComplexityIntermediate, got.Result.Complexity)
	assert.Contains(t, got.Result.Solution, "Reverse a linked list")
	assert.True(t, got.HasCredits, "non-billing failures keep the credit flag")
	assert.Empty(t, got.Error)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "code:fallback", pub.events[0].Key())
}

func TestCreditFlagIsOneWay(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("Your team has run out of credits")}
	uc, _ := newUseCase(llm, 0)
	s := createSession(t, uc)
	ctx := context.Background()

	got, err := uc.Submit(ctx, SubmitInput{SessionID: s.ID, Problem: "Explain closures", Mode: solution.ModeExplain})
	require.NoError(t, err)
	assert.False(t, got.HasCredits)

	llm.mu.Lock()
	llm.err = nil
	llm.text = "closures capture variables"
	llm.mu.Unlock()

	got, err = uc.Submit(ctx, SubmitInput{SessionID: s.ID, Problem: "Explain closures", Mode: solution.ModeExplain})
	require.NoError(t, err)
	assert.Equal(t, session.SourceAI, got.Source)
	assert.Equal(t, "closures capture variables", got.Result.Solution)
	assert.False(t, got.HasCredits)
}

func TestSubmitBlankProblemIsNoop(t *testing.T) {
	llm := &scriptedLLM{}
	uc, pub := newUseCase(llm, 0)
	s := createSession(t, uc)

	for _, blank := range []string{"", "   ", "\n\t"} {
		_, err := uc.Submit(context.Background(), SubmitInput{SessionID: s.ID, Problem: blank, Mode: solution.ModeSolver})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}

	stored, err := uc.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.UpdatedAt, stored.UpdatedAt)
	assert.Empty(t, stored.Problem)
	assert.Nil(t, stored.Result)
	assert.Zero(t, llm.callCount())
	assert.Empty(t, pub.events)
}

func TestSecondSubmitWhileLoadingIsNoop(t *testing.T) {
	llm := &scriptedLLM{
		text:    "first answer",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	uc, _ := newUseCase(llm, 0)
	s := createSession(t, uc)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := uc.Submit(ctx, SubmitInput{SessionID: s.ID, Problem: "first", Mode: solution.ModeCode})
		done <- err
	}()
	<-llm.started

	loading, err := uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, loading.Loading)

	_, err = uc.Submit(ctx, SubmitInput{SessionID: s.ID, Problem: "second", Mode: solution.ModeExplain})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.ErrorIs(t, err, session.ErrSessionBusy)

	close(llm.release)
	require.NoError(t, <-done)

	final, err := uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", final.Problem)
	assert.Equal(t, "first answer", final.Result.Solution)
	assert.False(t, final.Loading)
	assert.Equal(t, 1, llm.callCount())
}

func TestFallbackFailureIsRecordedAsFlatError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	llm := &scriptedLLM{err: errors.New("connection reset"), onCall: cancel}
	uc, pub := newUseCase(llm, time.Hour)
	s := createSession(t, uc)

	got, err := uc.Submit(ctx, SubmitInput{SessionID: s.ID, Problem: "x", Mode: solution.ModeSolver})
	require.NoError(t, err)
	assert.Equal(t, FallbackFailedMessage, got.Error)
	assert.False(t, got.Loading)
	assert.Nil(t, got.Result)

	stored, err := uc.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, FallbackFailedMessage, stored.Error)

	require.Len(t, pub.events, 1)
	assert.Equal(t, stats.SourceError, pub.events[0].Source)
}

func TestUnknownSession(t *testing.T) {
	uc, _ := newUseCase(&scriptedLLM{}, 0)

	_, err := uc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = uc.Submit(context.Background(), SubmitInput{SessionID: uuid.New(), Problem: "x", Mode: solution.ModeSolver})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSubmitReleasesInFlightSlot(t *testing.T) {
	uc, _, repo := newUseCaseWithRepo(&scriptedLLM{text: "answer"}, 0)
	s := createSession(t, uc)

	_, err := uc.Submit(context.Background(), SubmitInput{SessionID: s.ID, Problem: "first", Mode: solution.ModeCode})
	require.NoError(t, err)
	assert.False(t, repo.locked(s.ID))

	_, err = uc.Submit(context.Background(), SubmitInput{SessionID: s.ID, Problem: "second", Mode: solution.ModeCode})
	require.NoError(t, err)
	assert.False(t, repo.locked(s.ID))
}
