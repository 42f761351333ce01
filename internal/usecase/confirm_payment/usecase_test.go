package confirm_payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeRepo struct {
	reservation *domain.Reservation
	confirmErr  error
	listErr     error
	writes      int
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.reservation == nil || f.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *f.reservation
	return &cp, nil
}

func (f *fakeRepo) ConfirmPayment(_ context.Context, id, expectedVersion int64, method, proofRef string) (*domain.Reservation, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	f.writes++
	cp := *f.reservation
	cp.Status = domain.StatusConfirmed
	cp.PaymentMethod = &method
	cp.PaymentProofRef = &proofRef
	cp.Version = expectedVersion + 1
	f.reservation = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.reservation == nil || f.reservation.VenueID != filter.VenueID {
		return nil, nil
	}
	cp := *f.reservation
	return []*domain.Reservation{&cp}, nil
}

type fakeDeriver struct{ err error }

func (f fakeDeriver) Derive(_ context.Context, venueID int64, date string) ([]domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Slot{{VenueID: venueID, Date: date, ClockTime: "10:00", State: domain.SlotOccupied}}, nil
}

type fakeLocker struct {
	err  error
	keys []string
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (locker.ReleaseFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, key)
	return func() {}, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notifier.ReservationConfirmed
	err  error
}

func (f *fakeNotifier) NotifyReservationConfirmed(_ context.Context, n notifier.ReservationConfirmed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

type nopMetrics struct{}

func (nopMetrics) ObserveTransition(string, string, string) {}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:           10,
		VenueID:      1,
		VenueName:    "Cancha Central",
		CustomerName: "Lucia",
		Date:         "2025-03-01",
		StartTime:    "10:00",
		EndTime:      "11:00",
		Kind:         domain.KindBooking,
		Status:       domain.StatusPending,
		Version:      4,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeRepo{reservation: pendingReservation()}
	n := &fakeNotifier{}
	uc := NewUseCase(repo, fakeDeriver{}, &fakeLocker{}, n, nopMetrics{}, logger.Nop{})

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID:   10,
		PaymentMethod:   "transfer",
		PaymentProofRef: "https://receipts.example/10.png",
	})
	require.NoError(t, err)
	uc.Wait()

	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	require.NotNil(t, resp.Reservation.PaymentProofRef)
	assert.Equal(t, "https://receipts.example/10.png", *resp.Reservation.PaymentProofRef)
	assert.Equal(t, 1, repo.writes)

	require.Len(t, n.sent, 1)
	assert.Equal(t, "Cancha Central", n.sent[0].VenueName)
	assert.Equal(t, "10:00 - 11:00", n.sent[0].TimeRange())
	assert.Equal(t, "transfer", n.sent[0].PaymentMethod)

	assert.True(t, resp.Refreshed)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, domain.StatusConfirmed, resp.Reservations[0].Status)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.SlotOccupied, resp.Slots[0].State)
}

func TestUseCase_Execute_TakesScheduleLock(t *testing.T) {
	repo := &fakeRepo{reservation: pendingReservation()}
	lock := &fakeLocker{}
	uc := NewUseCase(repo, fakeDeriver{}, lock, &fakeNotifier{}, nopMetrics{}, logger.Nop{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, PaymentMethod: "cash"})
	require.NoError(t, err)
	uc.Wait()

	assert.Equal(t, []string{locker.SlotKey(1, "2025-03-01")}, lock.keys)
}

func TestUseCase_Execute_RefreshFailure(t *testing.T) {
	tests := []struct {
		name    string
		listErr error
		derive  fakeDeriver
	}{
		{name: "list failure", listErr: errors.New("db down")},
		{name: "derive failure", derive: fakeDeriver{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{reservation: pendingReservation(), listErr: tt.listErr}
			n := &fakeNotifier{}
			uc := NewUseCase(repo, tt.derive, &fakeLocker{}, n, nopMetrics{}, logger.Nop{})

			resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, PaymentMethod: "cash"})
			require.NoError(t, err)
			uc.Wait()

			// оплата сохранена и уведомление отправлено, хотя день не пересчитан
			assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
			assert.Equal(t, 1, repo.writes)
			assert.False(t, resp.Refreshed)
			assert.Empty(t, resp.Slots)
			assert.Len(t, n.sent, 1)
		})
	}
}

func TestUseCase_Execute_LockErrors(t *testing.T) {
	tests := []struct {
		name    string
		lockErr error
		wantErr error
	}{
		{name: "schedule busy", lockErr: locker.ErrNotAcquired, wantErr: ErrScheduleBusy},
		{name: "redis failure", lockErr: locker.ErrRedis, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{reservation: pendingReservation()}
			uc := NewUseCase(repo, fakeDeriver{}, &fakeLocker{err: tt.lockErr}, &fakeNotifier{}, nopMetrics{}, logger.Nop{})

			_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, PaymentMethod: "cash"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, repo.writes)
		})
	}
}

func TestUseCase_Execute_NotificationFailureIsIgnored(t *testing.T) {
	repo := &fakeRepo{reservation: pendingReservation()}
	uc := NewUseCase(repo, fakeDeriver{}, &fakeLocker{}, &fakeNotifier{err: errors.New("ses throttled")}, nopMetrics{}, logger.Nop{})

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, PaymentMethod: "cash"})
	require.NoError(t, err)
	uc.Wait()
	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
}

func TestUseCase_Execute_NotPending(t *testing.T) {
	r := pendingReservation()
	r.Status = domain.StatusCancelled
	repo := &fakeRepo{reservation: r}
	n := &fakeNotifier{}
	uc := NewUseCase(repo, fakeDeriver{}, &fakeLocker{}, n, nopMetrics{}, logger.Nop{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, PaymentMethod: "cash"})
	uc.Wait()
	assert.ErrorIs(t, err, ErrNotPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 0, repo.writes)
	assert.Empty(t, n.sent)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repo    *fakeRepo
		req     *Request
		wantErr error
	}{
		{"missing method", &fakeRepo{reservation: pendingReservation()}, &Request{ReservationID: 10}, ErrInvalidInput},
		{"not found", &fakeRepo{reservation: pendingReservation()}, &Request{ReservationID: 11, PaymentMethod: "cash"}, ErrReservationNotFound},
		{"stale version", &fakeRepo{reservation: pendingReservation(), confirmErr: reservationRepo.ErrVersionConflict}, &Request{ReservationID: 10, PaymentMethod: "cash"}, ErrConcurrentUpdate},
		{"storage failure", &fakeRepo{reservation: pendingReservation(), confirmErr: errors.New("db down")}, &Request{ReservationID: 10, PaymentMethod: "cash"}, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(tt.repo, fakeDeriver{}, &fakeLocker{}, &fakeNotifier{}, nopMetrics{}, logger.Nop{})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
