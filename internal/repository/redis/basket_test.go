package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
)

func setupTestRedis(t *testing.T) (*BasketRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewBasketRepository(client, 30*24*time.Hour)
	return repo, mr
}

func sampleBasket() *domain.Basket {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Basket{
		UserID: "user-001",
		Items: []domain.BasketItem{
			{ProductID: "prod-1", AddedAt: now},
			{ProductID: "prod-2", AddedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBasketRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	basket := sampleBasket()
	data, err := json.Marshal(basket)
	require.NoError(t, err)

	require.NoError(t, mr.Set("basket:"+basket.UserID, string(data)))

	got, err := repo.Get(context.Background(), basket.UserID)
	require.NoError(t, err)
	assert.Equal(t, basket.UserID, got.UserID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "prod-1", got.Items[0].ProductID)
	assert.Equal(t, "prod-2", got.Items[1].ProductID)
}

func TestBasketRepository_Get_MissingKeyYieldsEmptyBasket(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "nonexistent-user")
	require.NoError(t, err)
	assert.Equal(t, "nonexistent-user", got.UserID)
	assert.Empty(t, got.Items)
}

func TestBasketRepository_Get_InvalidJSON(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("basket:user-bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "user-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal basket")
}

func TestBasketRepository_Save_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	basket := sampleBasket()
	err := repo.Save(context.Background(), basket)
	require.NoError(t, err)

	assert.True(t, mr.Exists("basket:" + basket.UserID))

	raw, err := mr.Get("basket:" + basket.UserID)
	require.NoError(t, err)

	var stored domain.Basket
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, basket.UserID, stored.UserID)
	require.Len(t, stored.Items, 2)
}

func TestBasketRepository_Save_SetsTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	basket := sampleBasket()
	require.NoError(t, repo.Save(context.Background(), basket))

	ttl := mr.TTL("basket:" + basket.UserID)
	assert.Equal(t, 30*24*time.Hour, ttl)
}

func TestBasketRepository_Save_TouchesUpdatedAt(t *testing.T) {
	repo, mr := setupTestRedis(t)

	basket := sampleBasket()
	stale := time.Now().UTC().Add(-time.Hour)
	basket.UpdatedAt = stale

	require.NoError(t, repo.Save(context.Background(), basket))

	raw, err := mr.Get("basket:" + basket.UserID)
	require.NoError(t, err)

	var stored domain.Basket
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.True(t, stored.UpdatedAt.After(stale))
}

func TestBasketRepository_Delete_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	basket := sampleBasket()
	require.NoError(t, repo.Save(context.Background(), basket))
	require.True(t, mr.Exists("basket:"+basket.UserID))

	require.NoError(t, repo.Delete(context.Background(), basket.UserID))
	assert.False(t, mr.Exists("basket:"+basket.UserID))
}

func TestBasketRepository_Delete_MissingKeyIsNoError(t *testing.T) {
	repo, _ := setupTestRedis(t)

	err := repo.Delete(context.Background(), "nonexistent-user")
	assert.NoError(t, err)
}
