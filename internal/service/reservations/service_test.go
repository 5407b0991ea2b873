package reservations

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condohub/reservation-service/internal/domain"
	reservationRepo "github.com/condohub/reservation-service/internal/infra/storage/reservation"
	"github.com/condohub/reservation-service/internal/integrations/directory"
	"github.com/condohub/reservation-service/internal/service/reservations/models"
	"github.com/condohub/reservation-service/pkg/types"
)

// fakes

type fakeRepo struct {
	byID           *domain.Reservation
	byIDErr        error
	byRequester    []*domain.Reservation
	byFilter       []*domain.Reservation
	decisionStatus domain.ReservationStatus
	decisionReason *string
	decisionAt     *time.Time
	decisionFrom   []domain.ReservationStatus
	decisionErr    error
	decisionCalls  int
	deleteCalls    int
	deletedID      int64
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	res := *f.byID
	return &res, nil
}

func (f *fakeRepo) GetByFilter(_ context.Context, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	return f.byFilter, nil
}

func (f *fakeRepo) GetByRequester(_ context.Context, _, _ int64) ([]*domain.Reservation, error) {
	return f.byRequester, nil
}

func (f *fakeRepo) SetDecision(_ context.Context, _ int64, status domain.ReservationStatus, reason *string, rejectedAt *time.Time, from ...domain.ReservationStatus) error {
	f.decisionCalls++
	f.decisionStatus = status
	f.decisionReason = reason
	f.decisionAt = rejectedAt
	f.decisionFrom = from
	return f.decisionErr
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.deleteCalls++
	f.deletedID = id
	return nil
}

type fakeDirectory struct {
	resident *directory.Resident
}

func (f *fakeDirectory) GetResidentWithGracefulDegradation(_ context.Context, _ int64) (*directory.Resident, error) {
	return f.resident, nil
}

type fakeMailer struct {
	sent    int
	toEmail string
	status  domain.ReservationStatus
}

func (f *fakeMailer) SendDecision(_, toEmail string, res *domain.Reservation) error {
	f.sent++
	f.toEmail = toEmail
	f.status = res.Status
	return nil
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) Invalidate(_ context.Context, _, _ int64, _ time.Time) error {
	f.invalidations++
	return nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// helpers

var (
	manager  = models.Actor{ID: 1, Role: domain.RoleManager, CondoID: 1}
	owner    = models.Actor{ID: 42, Role: domain.RoleResident, CondoID: 1}
	stranger = models.Actor{ID: 77, Role: domain.RoleResident, CondoID: 1}
)

func testReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              500,
		CondoID:         1,
		AreaID:          10,
		AreaName:        "Quadra",
		ReservationDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.FromHour(14),
		EndTime:         types.FromHour(16),
		RequesterID:     42,
		RequesterName:   "Maria Souza",
		ApartmentLabel:  "301",
		Status:          status,
	}
}

type fixture struct {
	svc    *Service
	repo   *fakeRepo
	mailer *fakeMailer
	cache  *fakeCache
}

func newFixture(res *domain.Reservation) *fixture {
	f := &fixture{
		repo:   &fakeRepo{byID: res},
		mailer: &fakeMailer{},
		cache:  &fakeCache{},
	}
	dir := &fakeDirectory{resident: &directory.Resident{
		ID:    42,
		Name:  "Maria Souza",
		Email: "maria@example.com",
	}}
	f.svc = NewService(f.repo, dir, f.mailer, f.cache, nopLogger{})
	f.svc.timeProvider = &fixedClock{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

// GetByID

func TestGetByID_OwnerSees(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	resp, err := f.svc.GetByID(context.Background(), 500, owner)

	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.ID)
}

func TestGetByID_ManagerSees(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.GetByID(context.Background(), 500, manager)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.GetByID(context.Background(), 500, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_OtherCondoIsNotFound(t *testing.T) {
	res := testReservation(domain.StatusPending)
	res.CondoID = 9
	f := newFixture(res)

	// Vazar a existência de reserva de outro condomínio seria pior que 404
	_, err := f.svc.GetByID(context.Background(), 500, manager)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(nil)
	f.repo.byIDErr = reservationRepo.ErrReservationNotFound

	_, err := f.svc.GetByID(context.Background(), 500, manager)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

// GetCondoReservations

func TestGetCondoReservations_ManagerOnly(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.GetCondoReservations(context.Background(), &models.GetCondoReservationsRequest{Actor: owner})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCondoReservations_InvalidStatusFilter(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))
	bogus := "sleeping"

	_, err := f.svc.GetCondoReservations(context.Background(), &models.GetCondoReservationsRequest{
		Actor:  manager,
		Status: &bogus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCondoReservations_Success(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))
	f.repo.byFilter = []*domain.Reservation{testReservation(domain.StatusPending), testReservation(domain.StatusConfirmed)}

	resp, err := f.svc.GetCondoReservations(context.Background(), &models.GetCondoReservationsRequest{Actor: manager})

	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)
}

// GetUserReservations

func TestGetUserReservations_OwnHistory(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))
	f.repo.byRequester = []*domain.Reservation{testReservation(domain.StatusConfirmed)}

	resp, err := f.svc.GetUserReservations(context.Background(), 42, owner)

	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestGetUserReservations_StrangerDenied(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.GetUserReservations(context.Background(), 42, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserReservations_ManagerAllowed(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.GetUserReservations(context.Background(), 42, manager)
	assert.NoError(t, err)
}

// Approve

func TestApprove_PendingBecomesConfirmed(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	resp, err := f.svc.Approve(context.Background(), 500, manager)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.repo.decisionStatus)
	assert.Nil(t, f.repo.decisionReason)
	assert.Equal(t, 1, f.cache.invalidations)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "maria@example.com", f.mailer.toEmail)
}

func TestApprove_ManagerOnly(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.Approve(context.Background(), 500, owner)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, f.repo.decisionCalls)
}

func TestApprove_GuardsPendingStatusInUpdate(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.Approve(context.Background(), 500, manager)

	require.NoError(t, err)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusPending}, f.repo.decisionFrom)
}

func TestApprove_ConcurrentDecisionLosesRace(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))
	// Outra decisão passou entre a leitura e o update
	f.repo.decisionErr = reservationRepo.ErrStaleStatus

	_, err := f.svc.Approve(context.Background(), 500, manager)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.mailer.sent)
	assert.Zero(t, f.cache.invalidations)
}

func TestApprove_OnlyPending(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(testReservation(status))

			_, err := f.svc.Approve(context.Background(), 500, manager)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, f.repo.decisionCalls)
		})
	}
}

// Reject

func TestReject_Pending(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	resp, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{
		Actor:  manager,
		Reason: "  manutenção na quadra  ",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	assert.Equal(t, domain.StatusRejected, f.repo.decisionStatus)
	require.NotNil(t, f.repo.decisionReason)
	assert.Equal(t, "manutenção na quadra", *f.repo.decisionReason)
	require.NotNil(t, f.repo.decisionAt)
	assert.Equal(t, 1, f.cache.invalidations)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, domain.StatusRejected, f.mailer.status)
}

func TestReject_ConfirmedCanBeRejected(t *testing.T) {
	f := newFixture(testReservation(domain.StatusConfirmed))

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{Actor: manager, Reason: "obra"})
	assert.NoError(t, err)
}

func TestReject_GuardsStatusInUpdate(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{Actor: manager, Reason: "obra"})

	require.NoError(t, err)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}, f.repo.decisionFrom)
}

func TestReject_ConcurrentDecisionLosesRace(t *testing.T) {
	f := newFixture(testReservation(domain.StatusConfirmed))
	f.repo.decisionErr = reservationRepo.ErrStaleStatus

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{Actor: manager, Reason: "obra"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.mailer.sent)
}

func TestReject_RejectedIsTerminal(t *testing.T) {
	f := newFixture(testReservation(domain.StatusRejected))

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{Actor: manager, Reason: "obra"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_BlankReason(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{Actor: manager, Reason: "   "})
	assert.ErrorIs(t, err, ErrBlankReason)
	assert.Zero(t, f.repo.decisionCalls)
}

func TestReject_ReasonTooLong(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{
		Actor:  manager,
		Reason: strings.Repeat("x", domain.MaxRejectionReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReject_ManagerOnly(t *testing.T) {
	f := newFixture(testReservation(domain.StatusPending))

	_, err := f.svc.Reject(context.Background(), 500, &models.RejectRequest{Actor: owner, Reason: "obra"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Cancel

func TestCancel_OwnerDeletes(t *testing.T) {
	f := newFixture(testReservation(domain.StatusConfirmed))

	err := f.svc.Cancel(context.Background(), 500, &models.CancelRequest{Actor: owner})

	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.deleteCalls)
	assert.Equal(t, int64(500), f.repo.deletedID)
	assert.Equal(t, 1, f.cache.invalidations)
	assert.Zero(t, f.repo.decisionCalls)
}

func TestCancel_ManagerCancellingOthersBecomesRejection(t *testing.T) {
	f := newFixture(testReservation(domain.StatusConfirmed))

	err := f.svc.Cancel(context.Background(), 500, &models.CancelRequest{
		Actor:  manager,
		Reason: "evento do condomínio",
	})

	require.NoError(t, err)
	// Cancelamento de terceiro preserva o histórico como rejeição
	assert.Zero(t, f.repo.deleteCalls)
	assert.Equal(t, 1, f.repo.decisionCalls)
	assert.Equal(t, domain.StatusRejected, f.repo.decisionStatus)
}

func TestCancel_ManagerNeedsReason(t *testing.T) {
	f := newFixture(testReservation(domain.StatusConfirmed))

	err := f.svc.Cancel(context.Background(), 500, &models.CancelRequest{Actor: manager})
	assert.ErrorIs(t, err, ErrBlankReason)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture(testReservation(domain.StatusConfirmed))

	err := f.svc.Cancel(context.Background(), 500, &models.CancelRequest{Actor: stranger, Reason: "x"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_RejectedIsTerminal(t *testing.T) {
	f := newFixture(testReservation(domain.StatusRejected))

	err := f.svc.Cancel(context.Background(), 500, &models.CancelRequest{Actor: owner})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.repo.deleteCalls)
}
