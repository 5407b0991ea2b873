// Package slots caches the computed availability grid in Redis.
//
// Only dates other than today are cached: today's grid depends on the
// current hour and would go stale within the TTL. Every mutation that
// touches an area+date deletes the key, so readers never see a grid
// older than the last write.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/condohub/reservation-service/internal/domain"
)

// ErrCacheMiss retornado quando a chave não está no Redis
var ErrCacheMiss = errors.New("slots.cache: key not found")

// ErrCacheUnavailable retornado quando o Redis não responde
var ErrCacheUnavailable = errors.New("slots.cache: redis unavailable")

// Cache guarda grades de disponibilidade por área e data.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCache cria o cache de grades com o TTL dado.
func NewCache(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(condoID, areaID int64, date time.Time) string {
	return fmt.Sprintf("slots:%d:%d:%s", condoID, areaID, date.Format(domain.DateFormat))
}

// Get busca a grade cacheada da área na data.
func (c *Cache) Get(ctx context.Context, condoID, areaID int64, date time.Time) ([]domain.Slot, error) {
	payload, err := c.client.Get(ctx, key(condoID, areaID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	var slots []domain.Slot
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, fmt.Errorf("slots.cache: Get - unmarshal grid: %w", err)
	}

	return slots, nil
}

// Set grava a grade da área na data com o TTL configurado.
func (c *Cache) Set(ctx context.Context, condoID, areaID int64, date time.Time, slots []domain.Slot) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slots.cache: Set - marshal grid: %w", err)
	}

	if err := c.client.Set(ctx, key(condoID, areaID, date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate remove a grade da área na data.
func (c *Cache) Invalidate(ctx context.Context, condoID, areaID int64, date time.Time) error {
	if err := c.client.Del(ctx, key(condoID, areaID, date)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// InvalidateAll remove todas as grades cacheadas da área.
// Usado quando as regras da área mudam e toda grade fica suspeita.
func (c *Cache) InvalidateAll(ctx context.Context, condoID, areaID int64) error {
	pattern := fmt.Sprintf("slots:%d:%d:*", condoID, areaID)

	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("%w: InvalidateAll - list keys: %v", ErrCacheUnavailable, err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateAll - delete keys: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// InvalidateArea remove as grades da área nas datas dadas.
// Usado antes de excluir uma área, que derruba reservas em cascata.
func (c *Cache) InvalidateArea(ctx context.Context, condoID, areaID int64, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, key(condoID, areaID, date))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateArea: %v", ErrCacheUnavailable, err)
	}

	return nil
}
