package transition_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
)

// UseCase use case смены статуса бронирования по машине состояний
type UseCase struct {
	reservationRepo ReservationRepository
	deriver         SlotDeriver
	locker          Locker
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	deriver SlotDeriver,
	locker Locker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		deriver:         deriver,
		locker:          locker,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет переход статуса
// Недопустимый переход отклоняется без записи; запись защищена проверкой версии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.ReservationID <= 0 {
		uc.logger.Warn("TransitionReservation: validation failed: reservationID must be positive")
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	target, err := domain.ParseReservationStatus(req.Target)
	if err != nil {
		uc.logger.Warn("TransitionReservation: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("TransitionReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("TransitionReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
	}

	from := current.Status
	updated, err := uc.transition(ctx, current, target)
	uc.metrics.ObserveTransition(string(from), string(target), domain.Kind(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionReservation: reservation id=%d %s -> %s", updated.ID, from, updated.Status)

	return uc.refresh(ctx, updated), nil
}

func (uc *UseCase) transition(ctx context.Context, current *domain.Reservation, target domain.ReservationStatus) (*domain.Reservation, error) {
	if current.IsBlock() || !domain.CanTransition(current.Status, target) {
		uc.logger.Warn("TransitionReservation: reservation id=%d: %s -> %s is not allowed",
			current.ID, current.Status, target)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
	}

	release, err := uc.locker.Acquire(ctx, locker.SlotKey(current.VenueID, current.Date))
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			uc.logger.Warn("TransitionReservation: venue=%d, date=%s schedule is busy", current.VenueID, current.Date)
			return nil, ErrScheduleBusy
		}
		uc.logger.Error("TransitionReservation: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: acquire lock: %v", ErrInternal, err)
	}
	defer release()

	updated, err := uc.reservationRepo.UpdateStatus(ctx, current.ID, current.Version, target)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrVersionConflict) {
			uc.logger.Warn("TransitionReservation: reservation id=%d version=%d is stale", current.ID, current.Version)
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("TransitionReservation: failed to update reservation id=%d: %v", current.ID, err)
		return nil, fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}

	return updated, nil
}

// refresh перечитывает бронирования площадки на дату и пересчитывает слоты
// Ошибка пересчёта не отменяет уже сохранённый переход
func (uc *UseCase) refresh(ctx context.Context, updated *domain.Reservation) *Response {
	resp := &Response{Reservation: updated}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID: updated.VenueID,
		Date:    &updated.Date,
	})
	if err != nil {
		uc.logger.Warn("TransitionReservation: venue=%d, date=%s refresh failed: %v", updated.VenueID, updated.Date, err)
		return resp
	}

	slots, err := uc.deriver.Derive(ctx, updated.VenueID, updated.Date)
	if err != nil {
		uc.logger.Warn("TransitionReservation: venue=%d, date=%s refresh failed: %v", updated.VenueID, updated.Date, err)
		return resp
	}

	domain.SortByCreatedDesc(reservations)
	resp.Reservations = reservations
	resp.Slots = slots
	resp.Refreshed = true
	return resp
}
