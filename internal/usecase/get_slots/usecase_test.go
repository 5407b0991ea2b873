package get_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condohub/reservation-service/internal/domain"
	cacheClient "github.com/condohub/reservation-service/internal/infra/cache/slots"
	areaRepo "github.com/condohub/reservation-service/internal/infra/storage/area"
	"github.com/condohub/reservation-service/pkg/ptr"
	"github.com/condohub/reservation-service/pkg/types"
)

// fakes

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	calls        int
	err          error
}

func (f *fakeReservationRepo) GetByFilter(_ context.Context, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeAreaRepo struct {
	area *domain.Area
	err  error
}

func (f *fakeAreaRepo) GetByID(_ context.Context, _ int64) (*domain.Area, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.area, nil
}

type fakeCache struct {
	stored   []domain.Slot
	getErr   error
	setCalls int
}

func (f *fakeCache) Get(_ context.Context, _, _ int64, _ time.Time) ([]domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored, nil
}

func (f *fakeCache) Set(_ context.Context, _, _ int64, _ time.Time, slots []domain.Slot) error {
	f.setCalls++
	f.stored = slots
	return nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// helpers

func testArea() *domain.Area {
	return &domain.Area{
		ID:               10,
		CondoID:          1,
		Name:             "Churrasqueira",
		OpenTime:         types.TimeString("08:00"),
		CloseTime:        types.TimeString("12:00"),
		RequiresApproval: true,
		MaxDurationHours: 2,
	}
}

func testReservation(status domain.ReservationStatus, startHour, durationHours int) *domain.Reservation {
	return &domain.Reservation{
		ID:        100,
		CondoID:   1,
		AreaID:    10,
		StartTime: types.FromHour(startHour),
		EndTime:   types.FromHour(startHour + durationHours),
		Status:    status,
	}
}

func newTestUseCase(repo ReservationRepository, areas *fakeAreaRepo, cache SlotCache, now time.Time) *UseCase {
	uc := NewUseCase(repo, areas, cache, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func statuses(slots []domain.Slot) []domain.SlotStatus {
	out := make([]domain.SlotStatus, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Status)
	}
	return out
}

// buildGrid

func TestBuildGrid_FutureDateAllFree(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	slots := buildGrid(testArea(), nil, date, now)

	require.Len(t, slots, 4)
	for i, slot := range slots {
		assert.Equal(t, 8+i, slot.Hour)
		assert.Equal(t, types.FromHour(8+i), slot.StartTime)
		assert.Equal(t, domain.SlotFree, slot.Status)
	}
}

func TestBuildGrid_HoldStatuses(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	reservations := []*domain.Reservation{
		testReservation(domain.StatusPending, 8, 1),
		testReservation(domain.StatusConfirmed, 9, 2),
		testReservation(domain.StatusRejected, 11, 1), // rejeitada não segura horário
	}

	slots := buildGrid(testArea(), reservations, date, now)

	assert.Equal(t, []domain.SlotStatus{
		domain.SlotPendingHold,
		domain.SlotConfirmedHold,
		domain.SlotConfirmedHold,
		domain.SlotFree,
	}, statuses(slots))
}

func TestBuildGrid_PastDayAllPast(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	reservations := []*domain.Reservation{
		testReservation(domain.StatusConfirmed, 9, 1),
	}

	slots := buildGrid(testArea(), reservations, date, now)

	// Passado vence a reserva: hora que já foi não é mais acionável
	for _, slot := range slots {
		assert.Equal(t, domain.SlotPast, slot.Status)
	}
}

func TestBuildGrid_TodayCurrentHourIsPast(t *testing.T) {
	now := time.Date(2026, 9, 3, 9, 30, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	slots := buildGrid(testArea(), nil, date, now)

	// 08:00 e 09:00 já passaram (a hora corrente conta como passada)
	assert.Equal(t, []domain.SlotStatus{
		domain.SlotPast,
		domain.SlotPast,
		domain.SlotFree,
		domain.SlotFree,
	}, statuses(slots))
}

func TestBuildGrid_Deterministic(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	reservations := []*domain.Reservation{
		testReservation(domain.StatusPending, 9, 2),
	}

	first := buildGrid(testArea(), reservations, date, now)
	second := buildGrid(testArea(), reservations, date, now)

	assert.Equal(t, first, second)
}

// Execute

func TestExecute_Success(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: []*domain.Reservation{
		testReservation(domain.StatusConfirmed, 8, 2),
	}}
	uc := newTestUseCase(repo, &fakeAreaRepo{area: testArea()}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CondoID: 1,
		AreaID:  10,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.AreaID)
	assert.Equal(t, "Churrasqueira", resp.AreaName)
	assert.Equal(t, []domain.SlotStatus{
		domain.SlotConfirmedHold,
		domain.SlotConfirmedHold,
		domain.SlotFree,
		domain.SlotFree,
	}, statuses(resp.Slots))
}

func TestExecute_AreaNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAreaRepo{err: areaRepo.ErrAreaNotFound}, nil, now)

	_, err := uc.Execute(context.Background(), &Request{
		CondoID: 1,
		AreaID:  99,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestExecute_AreaFromAnotherCondo(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	area := testArea()
	area.CondoID = 2
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAreaRepo{area: area}, nil, now)

	_, err := uc.Execute(context.Background(), &Request{
		CondoID: 1,
		AreaID:  10,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeAreaRepo{area: testArea()}, nil, now)

	_, err := uc.Execute(context.Background(), &Request{CondoID: 1, AreaID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CacheHitSkipsStorage(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	cached := []domain.Slot{{Hour: 8, StartTime: types.FromHour(8), Status: domain.SlotFree}}
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeAreaRepo{area: testArea()}, &fakeCache{stored: cached}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CondoID: 1,
		AreaID:  10,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, cached, resp.Slots)
	assert.Zero(t, repo.calls)
}

func TestExecute_CacheMissFillsCache(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	cache := &fakeCache{getErr: cacheClient.ErrCacheMiss}
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeAreaRepo{area: testArea()}, cache, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CondoID: 1,
		AreaID:  10,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, resp.Slots, cache.stored)
}

func TestExecute_TodayBypassesCache(t *testing.T) {
	now := time.Date(2026, 9, 3, 7, 0, 0, 0, time.UTC)
	cache := &fakeCache{stored: []domain.Slot{{Hour: 8}}}
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(repo, &fakeAreaRepo{area: testArea()}, cache, now)

	_, err := uc.Execute(context.Background(), &Request{
		CondoID: 1,
		AreaID:  10,
		Date:    time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Zero(t, cache.setCalls)
}

func TestExecute_FilterTargetsAreaAndDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	var captured domain.ReservationFilter
	repo := &capturingRepo{capture: &captured}
	uc := newTestUseCase(repo, &fakeAreaRepo{area: testArea()}, nil, now)

	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{CondoID: 1, AreaID: 10, Date: date})

	require.NoError(t, err)
	assert.Equal(t, int64(1), captured.CondoID)
	assert.Equal(t, ptr.Ptr(int64(10)), captured.AreaID)
	require.NotNil(t, captured.StartDate)
	require.NotNil(t, captured.EndDate)
	assert.Equal(t, date, *captured.StartDate)
	assert.Equal(t, date, *captured.EndDate)
}

type capturingRepo struct {
	capture *domain.ReservationFilter
}

func (r *capturingRepo) GetByFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	*r.capture = filter
	return nil, nil
}
