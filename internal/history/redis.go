package history

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kdduha/burnmaster/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "burnmaster:history:"

// RedisStore keeps each session's history in a capped redis list that
// expires together with the session.
type RedisStore struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration, limit int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(rdb, ttl, limit)
}

func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration, limit int) *RedisStore {
	return &RedisStore{
		client: client,
		limit:  limit,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *RedisStore) Push(ctx context.Context, sessionID string, roast models.GeneratedRoast) error {
	data, err := sonic.MarshalString(roast)
	if err != nil {
		return fmt.Errorf("failed to encode roast: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.limit-1))
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push history: %w", err)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context, sessionID string) ([]models.GeneratedRoast, error) {
	vals, err := r.client.LRange(ctx, sessionKey(sessionID), 0, int64(r.limit-1)).Result()
	if err == redis.Nil {
		return []models.GeneratedRoast{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	out := make([]models.GeneratedRoast, 0, len(vals))
	for _, v := range vals {
		var roast models.GeneratedRoast
		if err := sonic.UnmarshalString(v, &roast); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		out = append(out, roast)
	}
	return out, nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
