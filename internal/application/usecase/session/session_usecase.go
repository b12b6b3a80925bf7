package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	"github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/apperror"
	"github.com/khoahotran/ai-problem-solver/pkg/auth"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

// FallbackFailedMessage is shown when even the canned answer could not be
// produced.
const FallbackFailedMessage = "Failed to generate solution. Please try again."

var tracer = otel.Tracer("session_usecase")

type SessionUseCase struct {
	repo       session.Repository
	dispatcher *solve.Dispatcher
	fallback   *solve.FallbackSynthesizer
	publisher  service.EventPublisher
	jwtSvc     *auth.JWTService
	logger     logger.Logger
}

func NewSessionUseCase(
	repo session.Repository,
	d *solve.Dispatcher,
	fb *solve.FallbackSynthesizer,
	pub service.EventPublisher,
	jwtSvc *auth.JWTService,
	log logger.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		repo:       repo,
		dispatcher: d,
		fallback:   fb,
		publisher:  pub,
		jwtSvc:     jwtSvc,
		logger:     log,
	}
}

type CreateOutput struct {
	Session *session.Session
	Token   string
}

func (uc *SessionUseCase) Create(ctx context.Context) (*CreateOutput, error) {
	s := session.New(time.Now().UTC())
	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("Failed to create session", err)
		return nil, apperror.NewInternal("failed to create session", err)
	}

	token, err := uc.jwtSvc.GenerateToken(s.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to sign session token", err)
	}

	uc.logger.Info("Session created", zap.String("session_id", s.ID.String()))
	return &CreateOutput{Session: s, Token: token}, nil
}

func (uc *SessionUseCase) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError(err, id)
	}
	return s, nil
}

type SubmitInput struct {
	SessionID uuid.UUID
	Problem   string
	Mode      solution.Mode
}

// Submit runs one user action: dispatch, and on failure the canned fallback.
// An empty problem or a session that is already loading leaves the session
// untouched.
func (uc *SessionUseCase) Submit(ctx context.Context, input SubmitInput) (*session.Session, error) {
	ctx, span := tracer.Start(ctx, "Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("session_id", input.SessionID.String()),
		attribute.String("mode", input.Mode.String()),
	)

	if strings.TrimSpace(input.Problem) == "" {
		return nil, apperror.NewInvalidInput("problem must not be empty", nil)
	}

	l := uc.logger.With(zap.String("session_id", input.SessionID.String()), zap.String("mode", input.Mode.String()))

	lockToken, acquired, err := uc.repo.TryAcquire(ctx, input.SessionID)
	if err != nil {
		return nil, uc.mapRepoError(err, input.SessionID)
	}
	if !acquired {
		l.Info("Submit ignored, request already in flight")
		return nil, apperror.NewConflict("Request already in progress", "wait for the current request to finish", session.ErrSessionBusy)
	}
	// Final writes must land even if the client goes away mid-request.
	persistCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := uc.repo.Release(persistCtx, input.SessionID, lockToken); err != nil {
			l.Error("Failed to release session lock", err)
		}
	}()

	s, err := uc.repo.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, uc.mapRepoError(err, input.SessionID)
	}

	s.Begin(input.Problem, input.Mode, time.Now().UTC())
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, apperror.NewInternal("failed to save session", err)
	}

	result, err := uc.dispatcher.Dispatch(ctx, input.Problem, input.Mode)
	source := session.SourceAI
	if err != nil {
		span.RecordError(err)
		l.Warn("AI request failed, using demonstration mode", zap.Error(err))
		if solve.IsCreditsError(err) {
			s.MarkCreditsExhausted()
		}

		result, err = uc.fallback.Synthesize(ctx, input.Problem, input.Mode)
		source = session.SourceFallback
		if err != nil {
			l.Error("Fallback solution failed", err)
			s.Fail(FallbackFailedMessage, time.Now().UTC())
			uc.persist(persistCtx, l, s)
			uc.publish(persistCtx, l, s, stats.SourceError)
			return s, nil
		}
	}

	s.Complete(result, source, time.Now().UTC())
	uc.persist(persistCtx, l, s)
	uc.publish(persistCtx, l, s, string(source))

	l.Info("Submit finished", zap.String("source", string(source)), zap.Bool("has_credits", s.HasCredits))
	return s, nil
}

func (uc *SessionUseCase) persist(ctx context.Context, l logger.Logger, s *session.Session) {
	if err := uc.repo.Save(ctx, s); err != nil {
		l.Error("Failed to save session result", err)
	}
}

func (uc *SessionUseCase) publish(ctx context.Context, l logger.Logger, s *session.Session, source string) {
	evt := stats.SolveEvent{
		SessionID:        s.ID,
		Mode:             s.Mode.String(),
		Source:           source,
		CreditsExhausted: !s.HasCredits,
		At:               time.Now().UTC(),
	}
	if err := uc.publisher.PublishSolveEvent(ctx, evt); err != nil {
		l.Warn("Failed to publish solve event", zap.Error(err))
	}
}

func (uc *SessionUseCase) mapRepoError(err error, id uuid.UUID) error {
	if errors.Is(err, session.ErrSessionNotFound) {
		return apperror.NewNotFound("session", id.String())
	}
	return apperror.NewInternal("failed to load session", err)
}
