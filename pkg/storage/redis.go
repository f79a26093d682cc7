package storage

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStorage keeps the serialized cart in a single Redis key with no
// expiry. A nil *RedisStorage is a valid no-op storage, mirroring how an
// unavailable browser localStorage degrades.
type RedisStorage struct {
	client *redis.Client
	key    string
	log    *zap.SugaredLogger
}

// NewRedisStorage connects using REDIS_URL (default redis://localhost:6379)
// and pings once. On any failure it logs and returns nil; callers fall back
// to in-memory storage.
func NewRedisStorage(key string, log *zap.SugaredLogger) *RedisStorage {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warnw("failed to parse redis url", "url", redisURL, "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis connection failed, cart will not persist", "error", err)
		return nil
	}

	log.Infow("redis connected", "key", key)
	return &RedisStorage{client: client, key: key, log: log}
}

func (r *RedisStorage) Read(ctx context.Context) ([]byte, error) {
	if r == nil || r.client == nil {
		return nil, ErrNotFound
	}
	val, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *RedisStorage) Write(ctx context.Context, data []byte) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisStorage) Purge(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Del(ctx, r.key).Err()
}

func (r *RedisStorage) Available() bool {
	return r != nil && r.client != nil
}

func (r *RedisStorage) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
