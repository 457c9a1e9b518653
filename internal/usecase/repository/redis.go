package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/project/catalog/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	_ DurableBackend = (*RedisBackend)(nil)
	_ Pinger         = (*RedisBackend)(nil)
)

// RedisBackend keeps each record under "<prefix>:<id>" and the set of known ids
// under "<prefix>", so the collection can be enumerated without SCAN.
type RedisBackend struct {
	logger *zap.Logger
	client redis.Cmdable
	prefix string
}

func NewRedisBackend(l *zap.Logger, client redis.Cmdable, prefix string) (*RedisBackend, error) {
	if prefix == "" {
		return nil, ErrEmptyLocation
	}
	return &RedisBackend{
		logger: l,
		client: client,
		prefix: prefix,
	}, nil
}

func (r *RedisBackend) key(id string) string {
	return r.prefix + ":" + id
}

func (r *RedisBackend) Read(ctx context.Context, id int64) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(formatID(id))).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	return data, err
}

func (r *RedisBackend) ReadAll(ctx context.Context) ([][]byte, error) {
	ids, err := r.Keys(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return [][]byte{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([][]byte, 0, len(values))
	for i, value := range values {
		s, ok := value.(string)
		if !ok {
			logger.MakeInfo(r.logger, "index references a missing record", zap.String("key", keys[i]))
			continue
		}
		result = append(result, []byte(s))
	}
	return result, nil
}

func (r *RedisBackend) Write(ctx context.Context, id int64, data []byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(formatID(id)), data, 0)
		pipe.SAdd(ctx, r.prefix, formatID(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write %s: %w", r.key(formatID(id)), err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, id int64) (bool, error) {
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.Del(ctx, r.key(formatID(id)))
		pipe.SRem(ctx, r.prefix, formatID(id))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis delete %s: %w", r.key(formatID(id)), err)
	}
	return removed.Val() > 0, nil
}

func (r *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, r.prefix).Result()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
