package storage

import (
	"context"

	"gahana/internal/domain/service"
	"gahana/internal/errors"

	"github.com/redis/go-redis/v9"
)

// redisStore shares client state across machines through Redis.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps a client. The store closes the client on Close.
func NewRedisStore(client *redis.Client, prefix string) service.KVStore {
	return &redisStore{client: client, prefix: prefix}
}

// OpenRedisStore connects using a redis:// URL.
func OpenRedisStore(url, prefix string) (service.KVStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}

	return NewRedisStore(redis.NewClient(opt), prefix), nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", key)
	}

	return data, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.Wrapf(s.client.Set(ctx, s.prefix+key, value, 0).Err(), "failed to write %s", key)
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.Del(ctx, s.prefix+key).Err(), "failed to delete %s", key)
}

func (s *redisStore) Close() error {
	return errors.WithStack(s.client.Close())
}
