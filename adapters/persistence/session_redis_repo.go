package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

const sessionKeyPrefix = "session:"

// releaseScript deletes the lock only when it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSessionRepo struct {
	rdb     *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
	logger  logger.Logger
}

// NewRedisSessionRepo stores each session as JSON under session:<id>. The
// in-flight slot is a separate SETNX key whose TTL bounds a crashed request.
func NewRedisSessionRepo(rdb *redis.Client, ttl, lockTTL time.Duration, log logger.Logger) session.Repository {
	return &redisSessionRepo{rdb: rdb, ttl: ttl, lockTTL: lockTTL, logger: log}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func lockKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String() + ":inflight"
}

func (r *redisSessionRepo) Create(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *redisSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

func (r *redisSessionRepo) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := r.rdb.SetXX(ctx, sessionKey(s.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	if !ok {
		return session.ErrSessionNotFound
	}
	return nil
}

func (r *redisSessionRepo) TryAcquire(ctx context.Context, id uuid.UUID) (string, bool, error) {
	n, err := r.rdb.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis exists session: %w", err)
	}
	if n == 0 {
		return "", false, session.ErrSessionNotFound
	}

	token := uuid.NewString()
	acquired, err := r.rdb.SetNX(ctx, lockKey(id), token, r.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis lock session: %w", err)
	}
	if !acquired {
		return "", false, nil
	}
	return token, true, nil
}

func (r *redisSessionRepo) Release(ctx context.Context, id uuid.UUID, token string) error {
	n, err := releaseScript.Run(ctx, r.rdb, []string{lockKey(id)}, token).Int64()
	if err != nil {
		return fmt.Errorf("redis unlock session: %w", err)
	}
	if n == 0 {
		r.logger.Warn("Session lock was already taken over, leaving it", zap.String("session_id", id.String()))
	}
	return nil
}
