package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
)

const keyPrefix = "basket:"

// BasketRepository implements repository.BasketRepository using Redis.
type BasketRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBasketRepository creates a new Redis-backed basket repository.
func NewBasketRepository(client *redis.Client, ttl time.Duration) *BasketRepository {
	return &BasketRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a basket by user ID from Redis. A missing key yields an
// empty basket rather than an error.
func (r *BasketRepository) Get(ctx context.Context, userID string) (*domain.Basket, error) {
	key := keyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			now := time.Now().UTC()
			return &domain.Basket{
				UserID:    userID,
				Items:     []domain.BasketItem{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, fmt.Errorf("redis get basket: %w", err)
	}

	var basket domain.Basket
	if err := json.Unmarshal(data, &basket); err != nil {
		return nil, fmt.Errorf("unmarshal basket: %w", err)
	}

	return &basket, nil
}

// Save persists a basket to Redis with the configured TTL.
func (r *BasketRepository) Save(ctx context.Context, basket *domain.Basket) error {
	key := keyPrefix + basket.UserID
	basket.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(basket)
	if err != nil {
		return fmt.Errorf("marshal basket: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set basket: %w", err)
	}

	return nil
}

// Delete removes a basket from Redis by user ID.
func (r *BasketRepository) Delete(ctx context.Context, userID string) error {
	key := keyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del basket: %w", err)
	}

	return nil
}
