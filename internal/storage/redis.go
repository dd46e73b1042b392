package storage

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/at-ishikawa/mizodict/internal/config"
)

const redisKeyPrefix = "mizodict:"

// RedisStore keeps values as plain Redis strings under the "mizodict:" prefix.
type RedisStore struct {
	client rueidis.Client
}

func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	if len(cfg.Addrs) == 0 {
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("redis addrs is required")}
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, &Error{Op: OpOpen, Err: fmt.Errorf("rueidis.NewClient() > %w", err)}
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(redisKeyPrefix + key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrKeyNotFound
		}
		return nil, &Error{Op: OpGet, Key: key, Err: err}
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(redisKeyPrefix + key).Value(string(value)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &Error{Op: OpSet, Key: key, Err: err}
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	cmd := s.client.B().Del().Key(redisKeyPrefix + key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &Error{Op: OpDelete, Key: key, Err: err}
	}
	return nil
}

func (s *RedisStore) Close() error {
	s.client.Close()
	return nil
}
