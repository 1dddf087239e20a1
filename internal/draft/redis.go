package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, d *domain.RentalDraft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	logger.ExternalServiceCall("redis", "SET", "key", key)
	err = s.rdb.Set(ctx, key, string(b), s.ttl).Err()
	logger.ExternalServiceResult("redis", "SET", err, "key", key)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*domain.RentalDraft, error) {
	logger.ExternalServiceCall("redis", "GET", "key", key)
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.ExternalServiceResult("redis", "GET", nil, "key", key, "found", false)
		return nil, nil
	}
	logger.ExternalServiceResult("redis", "GET", err, "key", key)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var d domain.RentalDraft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		// An unreadable slot is treated as empty so the client can start over.
		logger.Warn("Discarding undecodable draft", "key", key, "error", err)
		return nil, nil
	}
	return &d, nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	logger.ExternalServiceCall("redis", "DEL", "key", key)
	err := s.rdb.Del(ctx, key).Err()
	logger.ExternalServiceResult("redis", "DEL", err, "key", key)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
