package toggle_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type fakeRepo struct {
	existing  []*domain.Reservation
	listErr   error
	createErr error
	deleteErr error
	created   *domain.Reservation
	deleted   []int64
}

func (f *fakeRepo) List(_ context.Context, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	return f.existing, f.listErr
}

func (f *fakeRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = 99
	f.created = r
	return r, nil
}

func (f *fakeRepo) DeleteBlock(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDeriver struct {
	err   error
	calls int
}

func (f *fakeDeriver) Derive(_ context.Context, venueID int64, date string) ([]domain.Slot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Slot{{VenueID: venueID, Date: date, ClockTime: "10:00", State: domain.SlotOccupied}}, nil
}

type fakeLocker struct{ err error }

func (f fakeLocker) Acquire(context.Context, string) (locker.ReleaseFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	return func() {}, nil
}

type recordingMetrics struct{ results []string }

func (m *recordingMetrics) ObserveSlotToggle(action, result string) {
	m.results = append(m.results, action+":"+result)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newUseCase(repo *fakeRepo, deriver *fakeDeriver, lock fakeLocker) (*UseCase, *recordingMetrics) {
	m := &recordingMetrics{}
	uc := NewUseCase(repo, deriver, lock, m, domain.DefaultCatalog(), time.UTC, logger.Nop{}).
		WithTimeProvider(fixedTime{t: now})
	return uc, m
}

func request(action Action, clock types.TimeString) *Request {
	return &Request{VenueID: 1, VenueName: "Cancha Central", Date: "2025-03-01", ClockTime: clock, AdminID: 100, Action: action}
}

func TestUseCase_Block(t *testing.T) {
	t.Run("creates block record", func(t *testing.T) {
		repo := &fakeRepo{}
		deriver := &fakeDeriver{}
		uc, m := newUseCase(repo, deriver, fakeLocker{})

		resp, err := uc.Execute(context.Background(), request(ActionBlock, "10:00"))
		require.NoError(t, err)

		require.NotNil(t, repo.created)
		assert.Equal(t, domain.KindBlock, repo.created.Kind)
		assert.Equal(t, domain.StatusConfirmed, repo.created.Status)
		assert.Equal(t, int64(100), repo.created.CustomerID)
		assert.Equal(t, types.TimeString("11:00"), repo.created.EndTime)
		assert.True(t, resp.Refreshed)
		assert.Len(t, resp.Slots, 1)
		assert.Equal(t, []string{"block:ok"}, m.results)
	})

	t.Run("already occupied", func(t *testing.T) {
		repo := &fakeRepo{existing: []*domain.Reservation{
			{ID: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusPending, Kind: domain.KindBooking},
		}}
		uc, m := newUseCase(repo, &fakeDeriver{}, fakeLocker{})

		_, err := uc.Execute(context.Background(), request(ActionBlock, "10:00"))
		assert.ErrorIs(t, err, ErrSlotOccupied)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, repo.created)
		assert.Equal(t, []string{"block:conflict"}, m.results)
	})

	t.Run("lost race on insert", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{createErr: reservationRepo.ErrSlotTaken}, &fakeDeriver{}, fakeLocker{})

		_, err := uc.Execute(context.Background(), request(ActionBlock, "10:00"))
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("past slot", func(t *testing.T) {
		repo := &fakeRepo{}
		uc, _ := newUseCase(repo, &fakeDeriver{}, fakeLocker{})

		_, err := uc.Execute(context.Background(), request(ActionBlock, "09:00"))
		assert.ErrorIs(t, err, ErrSlotInPast)
		assert.Nil(t, repo.created)
	})

	t.Run("refresh failure keeps the write", func(t *testing.T) {
		repo := &fakeRepo{}
		uc, _ := newUseCase(repo, &fakeDeriver{err: errors.New("timeout")}, fakeLocker{})

		resp, err := uc.Execute(context.Background(), request(ActionBlock, "12:00"))
		require.NoError(t, err)
		assert.NotNil(t, repo.created)
		assert.False(t, resp.Refreshed)
		assert.Nil(t, resp.Slots)
	})
}

func TestUseCase_Unblock(t *testing.T) {
	t.Run("removes block", func(t *testing.T) {
		repo := &fakeRepo{existing: []*domain.Reservation{
			{ID: 5, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusConfirmed, Kind: domain.KindBlock},
		}}
		uc, _ := newUseCase(repo, &fakeDeriver{}, fakeLocker{})

		resp, err := uc.Execute(context.Background(), request(ActionUnblock, "14:00"))
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, repo.deleted)
		assert.True(t, resp.Refreshed)
	})

	t.Run("held by customer booking", func(t *testing.T) {
		repo := &fakeRepo{existing: []*domain.Reservation{
			{ID: 6, StartTime: "13:00", EndTime: "15:00", Status: domain.StatusConfirmed, Kind: domain.KindBooking},
		}}
		uc, _ := newUseCase(repo, &fakeDeriver{}, fakeLocker{})

		_, err := uc.Execute(context.Background(), request(ActionUnblock, "14:00"))
		assert.ErrorIs(t, err, ErrSlotHeldByBooking)
		assert.Empty(t, repo.deleted)
	})

	t.Run("no block", func(t *testing.T) {
		uc, m := newUseCase(&fakeRepo{}, &fakeDeriver{}, fakeLocker{})

		_, err := uc.Execute(context.Background(), request(ActionUnblock, "14:00"))
		assert.ErrorIs(t, err, ErrBlockNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, []string{"unblock:not_found"}, m.results)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		repo := &fakeRepo{
			existing: []*domain.Reservation{
				{ID: 5, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusConfirmed, Kind: domain.KindBlock},
			},
			deleteErr: reservationRepo.ErrReservationNotFound,
		}
		uc, _ := newUseCase(repo, &fakeDeriver{}, fakeLocker{})

		_, err := uc.Execute(context.Background(), request(ActionUnblock, "14:00"))
		assert.ErrorIs(t, err, ErrBlockNotFound)
	})
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("invalid action", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, &fakeDeriver{}, fakeLocker{})
		_, err := uc.Execute(context.Background(), request("toggle", "10:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("time not in catalog", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, &fakeDeriver{}, fakeLocker{})
		_, err := uc.Execute(context.Background(), request(ActionBlock, "23:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("lock busy", func(t *testing.T) {
		uc, _ := newUseCase(&fakeRepo{}, &fakeDeriver{}, fakeLocker{err: locker.ErrNotAcquired})
		_, err := uc.Execute(context.Background(), request(ActionBlock, "10:00"))
		assert.ErrorIs(t, err, ErrScheduleBusy)
	})

	t.Run("storage failure", func(t *testing.T) {
		uc, m := newUseCase(&fakeRepo{listErr: errors.New("db down")}, &fakeDeriver{}, fakeLocker{})
		_, err := uc.Execute(context.Background(), request(ActionBlock, "10:00"))
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{"block:storage_failure"}, m.results)
	})
}
