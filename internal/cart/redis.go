package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/el-receso/cafeteria-service/internal/models"
)

// RedisStore keeps carts in Redis so sessions survive process restarts
// and multiple service instances see the same cart.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cafeteria:cart:" + sessionID
}

// Get returns the cart for a session, or an empty cart if none exists.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &models.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var c models.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

// Save writes the cart for a session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, c *models.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes a session's cart. Idempotent.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
