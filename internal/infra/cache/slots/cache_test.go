package slots

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/pkg/types"
)

var testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

func testGrid() []domain.Slot {
	return []domain.Slot{
		{Hour: 8, StartTime: types.FromHour(8), Status: domain.SlotFree},
		{Hour: 9, StartTime: types.FromHour(9), Status: domain.SlotConfirmedHold},
	}
}

func TestCache_GetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	payload, err := json.Marshal(testGrid())
	require.NoError(t, err)

	mock.ExpectGet("slots:1:10:2026-09-10").SetVal(string(payload))

	slots, err := cache.Get(context.Background(), 1, 10, testDate)

	require.NoError(t, err)
	assert.Equal(t, testGrid(), slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	mock.ExpectGet("slots:1:10:2026-09-10").RedisNil()

	_, err := cache.Get(context.Background(), 1, 10, testDate)

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetCorruptPayload(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	mock.ExpectGet("slots:1:10:2026-09-10").SetVal("{not json")

	_, err := cache.Get(context.Background(), 1, 10, testDate)
	assert.Error(t, err)
}

func TestCache_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	payload, err := json.Marshal(testGrid())
	require.NoError(t, err)

	mock.ExpectSet("slots:1:10:2026-09-10", payload, 5*time.Minute).SetVal("OK")

	err = cache.Set(context.Background(), 1, 10, testDate, testGrid())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	mock.ExpectDel("slots:1:10:2026-09-10").SetVal(1)

	err := cache.Invalidate(context.Background(), 1, 10, testDate)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateAll(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	keys := []string{"slots:1:10:2026-09-10", "slots:1:10:2026-09-11"}
	mock.ExpectKeys("slots:1:10:*").SetVal(keys)
	mock.ExpectDel(keys...).SetVal(2)

	err := cache.InvalidateAll(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateAllNoKeys(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	mock.ExpectKeys("slots:1:10:*").SetVal(nil)

	err := cache.InvalidateAll(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateArea(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	mock.ExpectDel("slots:1:10:2026-09-10", "slots:1:10:2026-09-11").SetVal(2)

	err := cache.InvalidateArea(context.Background(), 1, 10, []time.Time{
		testDate,
		testDate.AddDate(0, 0, 1),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateAreaEmptyDates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, 5*time.Minute)

	err := cache.InvalidateArea(context.Background(), 1, 10, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
