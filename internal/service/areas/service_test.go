package areas

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condohub/reservation-service/internal/domain"
	areaRepo "github.com/condohub/reservation-service/internal/infra/storage/area"
	"github.com/condohub/reservation-service/internal/service/areas/models"
	"github.com/condohub/reservation-service/pkg/ptr"
	"github.com/condohub/reservation-service/pkg/types"
)

// fakes

type fakeAreaRepo struct {
	area        *domain.Area
	areaErr     error
	created     *domain.Area
	updated     domain.AreaUpdate
	updateCalls int
	deleteCalls int
}

func (f *fakeAreaRepo) Create(_ context.Context, area *domain.Area) (*domain.Area, error) {
	f.created = area
	out := *area
	out.ID = 10
	return &out, nil
}

func (f *fakeAreaRepo) GetByID(_ context.Context, _ int64) (*domain.Area, error) {
	if f.areaErr != nil {
		return nil, f.areaErr
	}
	area := *f.area
	return &area, nil
}

func (f *fakeAreaRepo) ListByCondo(_ context.Context, _ int64) ([]*domain.Area, error) {
	if f.area == nil {
		return nil, nil
	}
	return []*domain.Area{f.area}, nil
}

func (f *fakeAreaRepo) Update(_ context.Context, _ int64, upd domain.AreaUpdate) (*domain.Area, error) {
	f.updateCalls++
	f.updated = upd

	area := *f.area
	if upd.Name != nil {
		area.Name = *upd.Name
	}
	if upd.OpenTime != nil {
		area.OpenTime = *upd.OpenTime
	}
	if upd.CloseTime != nil {
		area.CloseTime = *upd.CloseTime
	}
	if upd.RequiresApproval != nil {
		area.RequiresApproval = *upd.RequiresApproval
	}
	if upd.MaxDurationHours != nil {
		area.MaxDurationHours = *upd.MaxDurationHours
	}
	return &area, nil
}

func (f *fakeAreaRepo) Delete(_ context.Context, _ int64) error {
	f.deleteCalls++
	return nil
}

type fakeReservationRepo struct {
	count    int64
	dates    []time.Time
	datesErr error
}

func (f *fakeReservationRepo) CountByArea(_ context.Context, _ int64) (int64, error) {
	return f.count, nil
}

func (f *fakeReservationRepo) DatesTouchedByArea(_ context.Context, _ int64) ([]time.Time, error) {
	if f.datesErr != nil {
		return nil, f.datesErr
	}
	return f.dates, nil
}

type fakeCache struct {
	invalidateAll    int
	invalidateArea   int
	invalidatedDates []time.Time
}

func (f *fakeCache) InvalidateAll(_ context.Context, _, _ int64) error {
	f.invalidateAll++
	return nil
}

func (f *fakeCache) InvalidateArea(_ context.Context, _, _ int64, dates []time.Time) error {
	f.invalidateArea++
	f.invalidatedDates = dates
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// helpers

var (
	manager  = models.Actor{ID: 1, Role: domain.RoleManager, CondoID: 1}
	resident = models.Actor{ID: 42, Role: domain.RoleResident, CondoID: 1}
)

func testArea() *domain.Area {
	return &domain.Area{
		ID:               10,
		CondoID:          1,
		Name:             "Piscina",
		OpenTime:         types.TimeString("08:00"),
		CloseTime:        types.TimeString("20:00"),
		RequiresApproval: false,
		MaxDurationHours: 3,
	}
}

func validCreateRequest() *models.CreateAreaRequest {
	return &models.CreateAreaRequest{
		Actor:            manager,
		Name:             "Piscina",
		OpenTime:         "08:00",
		CloseTime:        "20:00",
		RequiresApproval: false,
		MaxDurationHours: 3,
	}
}

type fixture struct {
	svc   *Service
	areas *fakeAreaRepo
	resv  *fakeReservationRepo
	cache *fakeCache
}

func newFixture(area *domain.Area) *fixture {
	f := &fixture{
		areas: &fakeAreaRepo{area: area},
		resv:  &fakeReservationRepo{},
		cache: &fakeCache{},
	}
	f.svc = NewService(f.areas, f.resv, f.cache, nopLogger{})
	return f
}

// Create

func TestCreate_Success(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, int64(1), resp.CondoID)
	assert.Equal(t, "08:00", resp.OpenTime)
	assert.Equal(t, "20:00", resp.CloseTime)
}

func TestCreate_TrimsName(t *testing.T) {
	f := newFixture(nil)

	req := validCreateRequest()
	req.Name = "  Piscina  "

	_, err := f.svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Piscina", f.areas.created.Name)
}

func TestCreate_ManagerOnly(t *testing.T) {
	f := newFixture(nil)

	req := validCreateRequest()
	req.Actor = resident

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_ValidationMatrix(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateAreaRequest)
	}{
		{name: "blank name", mutate: func(r *models.CreateAreaRequest) { r.Name = "   " }},
		{name: "name too long", mutate: func(r *models.CreateAreaRequest) { r.Name = strings.Repeat("a", domain.MaxAreaNameLength+1) }},
		{name: "bad open format", mutate: func(r *models.CreateAreaRequest) { r.OpenTime = "8am" }},
		{name: "bad close format", mutate: func(r *models.CreateAreaRequest) { r.CloseTime = "25:00" }},
		{name: "open not whole hour", mutate: func(r *models.CreateAreaRequest) { r.OpenTime = "08:30" }},
		{name: "close not whole hour", mutate: func(r *models.CreateAreaRequest) { r.CloseTime = "20:15" }},
		{name: "open equals close", mutate: func(r *models.CreateAreaRequest) { r.CloseTime = "08:00" }},
		{name: "open after close", mutate: func(r *models.CreateAreaRequest) { r.OpenTime = "21:00" }},
		{name: "zero max duration", mutate: func(r *models.CreateAreaRequest) { r.MaxDurationHours = 0 }},
		{name: "duration exceeds open hours", mutate: func(r *models.CreateAreaRequest) { r.MaxDurationHours = 13 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			req := validCreateRequest()
			tt.mutate(req)

			_, err := f.svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// GetByID / List

func TestGetByID_Success(t *testing.T) {
	f := newFixture(testArea())

	resp, err := f.svc.GetByID(context.Background(), 10, 1)

	require.NoError(t, err)
	assert.Equal(t, "Piscina", resp.Name)
}

func TestGetByID_OtherCondoIsNotFound(t *testing.T) {
	area := testArea()
	area.CondoID = 9
	f := newFixture(area)

	_, err := f.svc.GetByID(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(nil)
	f.areas.areaErr = areaRepo.ErrAreaNotFound

	_, err := f.svc.GetByID(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(testArea())

	resp, err := f.svc.List(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, resp.Areas, 1)
}

// Update

func TestUpdate_PartialPatch(t *testing.T) {
	f := newFixture(testArea())

	resp, err := f.svc.Update(context.Background(), 10, &models.UpdateAreaRequest{
		Actor:            manager,
		RequiresApproval: ptr.Ptr(true),
	})

	require.NoError(t, err)
	assert.True(t, resp.RequiresApproval)
	// Campos não enviados não entram no update
	assert.Nil(t, f.areas.updated.Name)
	assert.Nil(t, f.areas.updated.OpenTime)
	assert.Equal(t, 1, f.cache.invalidateAll)
}

func TestUpdate_MergedStateIsValidated(t *testing.T) {
	f := newFixture(testArea())

	// Fechar às 10h deixaria o máximo de 3h maior que o expediente de 2h
	_, err := f.svc.Update(context.Background(), 10, &models.UpdateAreaRequest{
		Actor:     manager,
		CloseTime: ptr.Ptr("10:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.areas.updateCalls)
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	f := newFixture(testArea())

	resp, err := f.svc.Update(context.Background(), 10, &models.UpdateAreaRequest{Actor: manager})

	require.NoError(t, err)
	assert.Equal(t, "Piscina", resp.Name)
	assert.Zero(t, f.areas.updateCalls)
	assert.Zero(t, f.cache.invalidateAll)
}

func TestUpdate_ManagerOnly(t *testing.T) {
	f := newFixture(testArea())

	_, err := f.svc.Update(context.Background(), 10, &models.UpdateAreaRequest{Actor: resident})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Delete

func TestDelete_RequiresConfirmation(t *testing.T) {
	f := newFixture(testArea())

	_, err := f.svc.Delete(context.Background(), 10, false, manager)

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Zero(t, f.areas.deleteCalls)
}

func TestDelete_ReportsCascadedReservations(t *testing.T) {
	f := newFixture(testArea())
	f.resv.count = 7

	resp, err := f.svc.Delete(context.Background(), 10, true, manager)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.RemovedReservations)
	assert.Equal(t, 1, f.areas.deleteCalls)
}

func TestDelete_InvalidatesReservedDates(t *testing.T) {
	f := newFixture(testArea())
	f.resv.dates = []time.Time{
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	_, err := f.svc.Delete(context.Background(), 10, true, manager)

	require.NoError(t, err)
	// Só as datas com reserva saem do cache; nada de varredura por padrão
	assert.Equal(t, 1, f.cache.invalidateArea)
	assert.Equal(t, f.resv.dates, f.cache.invalidatedDates)
	assert.Zero(t, f.cache.invalidateAll)
}

func TestDelete_DateListFailureDoesNotAbort(t *testing.T) {
	f := newFixture(testArea())
	f.resv.datesErr = errors.New("boom")

	_, err := f.svc.Delete(context.Background(), 10, true, manager)

	require.NoError(t, err)
	assert.Equal(t, 1, f.areas.deleteCalls)
	assert.Zero(t, f.cache.invalidateArea)
}

func TestDelete_ManagerOnly(t *testing.T) {
	f := newFixture(testArea())

	_, err := f.svc.Delete(context.Background(), 10, true, resident)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_OtherCondoIsNotFound(t *testing.T) {
	area := testArea()
	area.CondoID = 9
	f := newFixture(area)

	_, err := f.svc.Delete(context.Background(), 10, true, manager)
	assert.ErrorIs(t, err, ErrAreaNotFound)
}
