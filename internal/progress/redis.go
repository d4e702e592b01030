package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key 前缀与保留时长
const (
	stopPointPrefix = "frantik:orchestrate:stop"
	stopPointTTL    = 24 * time.Hour
)

// RedisStore 把编排流程的断点位置存进 Redis，
// 进程崩溃后同一 runID 可以从上次提交位置继续。
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) key(runID string) string {
	return fmt.Sprintf("%s:%s", stopPointPrefix, runID)
}

// SaveStopPoint 记录已提交的批次数
func (s *RedisStore) SaveStopPoint(ctx context.Context, runID string, committed int) error {
	if err := s.rdb.Set(ctx, s.key(runID), committed, stopPointTTL).Err(); err != nil {
		return fmt.Errorf("redis set stop point: %w", err)
	}
	return nil
}

// LoadStopPoint 读取断点。没有记录时返回 (0, false, nil)。
func (s *RedisStore) LoadStopPoint(ctx context.Context, runID string) (int, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(runID)).Int()
	switch {
	case err == redis.Nil:
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("redis get stop point: %w", err)
	case val < 0:
		return 0, false, nil // 容错处理
	default:
		return val, true, nil
	}
}

// Clear 流程完成后清除断点
func (s *RedisStore) Clear(ctx context.Context, runID string) error {
	if err := s.rdb.Del(ctx, s.key(runID)).Err(); err != nil {
		return fmt.Errorf("redis del stop point: %w", err)
	}
	return nil
}
