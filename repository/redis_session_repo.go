package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"profile_finder/models"
)

// RedisSessionRepo 基于Redis的会话存储，过期交给键TTL处理
type RedisSessionRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSessionRepo(client *redis.Client, prefix string, ttl time.Duration) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisSessionRepo) key(id string) string {
	return r.prefix + id
}

func (r *RedisSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(id, data)
}

func (r *RedisSessionRepo) Save(ctx context.Context, s *models.Session) error {
	s.UpdatedAt = time.Now()
	data, err := encodeSession(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err()
}

func (r *RedisSessionRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// PurgeIdle Redis键自带TTL，无需主动清理
func (r *RedisSessionRepo) PurgeIdle(ctx context.Context, before time.Time) ([]string, error) {
	return nil, nil
}
