package persistence

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/ai-problem-solver/internal/domain/stats"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
	"go.uber.org/zap"
)

const statsHashKey = "stats:solve"

type redisStatsRepo struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisStatsRepo(rdb *redis.Client, log logger.Logger) stats.Repository {
	return &redisStatsRepo{rdb: rdb, logger: log}
}

func (r *redisStatsRepo) Increment(ctx context.Context, key string) error {
	if err := r.rdb.HIncrBy(ctx, statsHashKey, key, 1).Err(); err != nil {
		return fmt.Errorf("redis increment %s: %w", key, err)
	}
	return nil
}

func (r *redisStatsRepo) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.rdb.HGetAll(ctx, statsHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read counters: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.logger.Warn("Skipping malformed counter", zap.String("field", k), zap.String("value", v))
			continue
		}
		counts[k] = n
	}
	return counts, nil
}

type memoryStatsRepo struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryStatsRepo() stats.Repository {
	return &memoryStatsRepo{counts: make(map[string]int64)}
}

func (r *memoryStatsRepo) Increment(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	return nil
}

func (r *memoryStatsRepo) Counts(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int64, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out, nil
}
