package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/internal/service/notifications/models"
	"github.com/condohub/reservation-service/pkg/ptr"
)

// fakes

type fakeRepo struct {
	managerFeed   []*domain.Reservation
	requesterFeed []*domain.Reservation

	managerMarked   []int64
	requesterMarked []int64
	markedBy        int64
}

func (f *fakeRepo) GetManagerFeed(_ context.Context, _ int64) ([]*domain.Reservation, error) {
	return f.managerFeed, nil
}

func (f *fakeRepo) GetRequesterFeed(_ context.Context, _, _ int64) ([]*domain.Reservation, error) {
	return f.requesterFeed, nil
}

func (f *fakeRepo) MarkSeenByManager(_ context.Context, _ int64, ids []int64) error {
	f.managerMarked = ids
	return nil
}

func (f *fakeRepo) MarkSeenByRequester(_ context.Context, _, requesterID int64, ids []int64) error {
	f.requesterMarked = ids
	f.markedBy = requesterID
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

func feedReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              500,
		CondoID:         1,
		AreaID:          10,
		AreaName:        "Salão de Festas",
		ReservationDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		RequesterID:     42,
		ApartmentLabel:  "301",
		Status:          status,
		CreatedAt:       time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC),
	}
}

// GetManagerFeed

func TestGetManagerFeed_PendingIsUrgent(t *testing.T) {
	repo := &fakeRepo{managerFeed: []*domain.Reservation{feedReservation(domain.StatusPending)}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetManagerFeed(context.Background(), manager)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, int64(500), item.ReservationID)
	assert.Equal(t, "Reserva Pendente", item.Title)
	assert.Equal(t, "Salão de Festas - 10/09/2026 (Apto 301)", item.Description)
	assert.True(t, item.Urgent)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), item.CreatedAt)
}

func TestGetManagerFeed_ConfirmedIsNotUrgent(t *testing.T) {
	repo := &fakeRepo{managerFeed: []*domain.Reservation{feedReservation(domain.StatusConfirmed)}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetManagerFeed(context.Background(), manager)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Nova Reserva", resp.Items[0].Title)
	assert.False(t, resp.Items[0].Urgent)
}

func TestGetManagerFeed_ManagerOnly(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetManagerFeed(context.Background(), resident)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetManagerFeed_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	resp, err := svc.GetManagerFeed(context.Background(), manager)

	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

// GetRequesterFeed

func TestGetRequesterFeed_RejectionCarriesReason(t *testing.T) {
	res := feedReservation(domain.StatusRejected)
	res.RejectionReason = ptr.Ptr("manutenção no salão")
	repo := &fakeRepo{requesterFeed: []*domain.Reservation{res}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetRequesterFeed(context.Background(), resident)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "Reserva Rejeitada", item.Title)
	assert.Equal(t, "Cancelado: manutenção no salão", item.Description)
	// Decisão usa o instante da atualização, não o da criação
	assert.Equal(t, time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC), item.CreatedAt)
}

func TestGetRequesterFeed_Approval(t *testing.T) {
	repo := &fakeRepo{requesterFeed: []*domain.Reservation{feedReservation(domain.StatusConfirmed)}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetRequesterFeed(context.Background(), resident)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Reserva Aprovada", resp.Items[0].Title)
	assert.Equal(t, "Sua reserva de Salão de Festas para 10/09/2026 foi atualizada.", resp.Items[0].Description)
}

// MarkSeen

func TestMarkSeen_ManagerPath(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	err := svc.MarkSeen(context.Background(), &models.MarkSeenRequest{
		Actor:          manager,
		ReservationIDs: []int64{1, 2, 3},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, repo.managerMarked)
	assert.Nil(t, repo.requesterMarked)
}

func TestMarkSeen_RequesterPath(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	err := svc.MarkSeen(context.Background(), &models.MarkSeenRequest{
		Actor:          resident,
		ReservationIDs: []int64{5},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, repo.requesterMarked)
	assert.Equal(t, int64(42), repo.markedBy)
	assert.Nil(t, repo.managerMarked)
}

func TestMarkSeen_EmptyIDs(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	err := svc.MarkSeen(context.Background(), &models.MarkSeenRequest{Actor: resident})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
