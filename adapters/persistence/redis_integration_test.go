package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

type RedisIntegrationTestSuite struct {
	suite.Suite
	container   *tcredis.RedisContainer
	rdb         *redis.Client
	sessionRepo session.Repository
	statsRepo   stats.Repository
}

func (s *RedisIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		s.T().Fatalf("Failed to start redis container: %s", err)
	}
	s.container = container

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		s.T().Fatalf("Failed to parse redis url: %s", err)
	}
	s.rdb = redis.NewClient(opts)

	log := logger.NewNopLogger()
	s.sessionRepo = NewRedisSessionRepo(s.rdb, time.Hour, time.Minute, log)
	s.statsRepo = NewRedisStatsRepo(s.rdb, log)
}

func (s *RedisIntegrationTestSuite) TearDownSuite() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			s.T().Logf("Failed to terminate redis container: %s", err)
		}
	}
}

func TestRedisIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(RedisIntegrationTestSuite))
}

func (s *RedisIntegrationTestSuite) Test_Session_RoundTrip() {
	ctx := context.Background()
	sess := session.New(time.Now().UTC())
	s.Require().NoError(s.sessionRepo.Create(ctx, sess))

	sess.Begin("Reverse a linked list", solution.ModeCode, time.Now().UTC())
	sess.Complete(&solution.Solution{
		Category:   solution.CategoryTechnical,
		Complexity: solution.ComplexityIntermediate,
		KeySteps:   []string{"walk", "swap"},
		Solution:   "prev, cur = cur, cur.next",
	}, session.SourceFallback, time.Now().UTC())
	sess.MarkCreditsExhausted()
	s.Require().NoError(s.sessionRepo.Save(ctx, sess))

	got, err := s.sessionRepo.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal("Reverse a linked list", got.Problem)
	s.Equal(solution.ModeCode, got.Mode)
	s.Equal(session.SourceFallback, got.Source)
	s.False(got.HasCredits)
	s.Equal([]string{"walk", "swap"}, got.Result.KeySteps)

	ttl, err := s.rdb.TTL(ctx, sessionKey(sess.ID)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	_, err = s.sessionRepo.FindByID(ctx, uuid.New())
	s.ErrorIs(err, session.ErrSessionNotFound)
	s.ErrorIs(s.sessionRepo.Save(ctx, session.New(time.Now())), session.ErrSessionNotFound)
}

func (s *RedisIntegrationTestSuite) Test_Session_InFlightLock() {
	ctx := context.Background()
	sess := session.New(time.Now().UTC())
	s.Require().NoError(s.sessionRepo.Create(ctx, sess))

	first, ok, err := s.sessionRepo.TryAcquire(ctx, sess.ID)
	s.Require().NoError(err)
	s.True(ok)

	_, ok, err = s.sessionRepo.TryAcquire(ctx, sess.ID)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.sessionRepo.Release(ctx, sess.ID, first))
	second, ok, err := s.sessionRepo.TryAcquire(ctx, sess.ID)
	s.Require().NoError(err)
	s.True(ok)

	// Stale token from the first holder must not free the second lock.
	s.Require().NoError(s.sessionRepo.Release(ctx, sess.ID, first))
	held, err := s.rdb.Get(ctx, lockKey(sess.ID)).Result()
	s.Require().NoError(err)
	s.Equal(second, held)

	s.Require().NoError(s.sessionRepo.Release(ctx, sess.ID, second))
	n, err := s.rdb.Exists(ctx, lockKey(sess.ID)).Result()
	s.Require().NoError(err)
	s.Zero(n)

	_, _, err = s.sessionRepo.TryAcquire(ctx, uuid.New())
	s.ErrorIs(err, session.ErrSessionNotFound)
}

func (s *RedisIntegrationTestSuite) Test_Stats_Counters() {
	ctx := context.Background()
	s.Require().NoError(s.statsRepo.Increment(ctx, "explain:ai"))
	s.Require().NoError(s.statsRepo.Increment(ctx, "explain:ai"))
	s.Require().NoError(s.statsRepo.Increment(ctx, "code:fallback"))

	counts, err := s.statsRepo.Counts(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), counts["explain:ai"])
	s.Equal(int64(1), counts["code:fallback"])
}
