package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
)

const notifyTimeout = 15 * time.Second

// UseCase use case подтверждения оплаты бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	deriver         SlotDeriver
	locker          Locker
	notifier        Notifier
	metrics         Metrics
	logger          Logger

	// отправки уведомлений в фоне, ожидаются при остановке сервиса
	pending sync.WaitGroup
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	deriver SlotDeriver,
	locker Locker,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		deriver:         deriver,
		locker:          locker,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute записывает данные оплаты и переводит pending -> confirmed одной записью
// под блокировкой расписания, затем пересчитывает день площадки и отправляет уведомление в фоне.
// Ошибки пересчёта и отправки на сохранённое подтверждение не влияют
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	current, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ConfirmPayment: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
	}

	confirmed, err := uc.confirm(ctx, current, req)
	uc.metrics.ObserveTransition(string(current.Status), string(domain.StatusConfirmed), domain.Kind(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: reservation id=%d confirmed, method=%s", confirmed.ID, req.PaymentMethod)

	uc.notifyAsync(confirmed)

	return uc.refresh(ctx, confirmed), nil
}

func (uc *UseCase) confirm(ctx context.Context, current *domain.Reservation, req *Request) (*domain.Reservation, error) {
	if current.IsBlock() || current.Status != domain.StatusPending {
		uc.logger.Warn("ConfirmPayment: reservation id=%d is %s, expected pending", current.ID, current.Status)
		return nil, fmt.Errorf("%w: status %s", ErrNotPending, current.Status)
	}

	release, err := uc.locker.Acquire(ctx, locker.SlotKey(current.VenueID, current.Date))
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			uc.logger.Warn("ConfirmPayment: venue=%d, date=%s schedule is busy", current.VenueID, current.Date)
			return nil, ErrScheduleBusy
		}
		uc.logger.Error("ConfirmPayment: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: acquire lock: %v", ErrInternal, err)
	}
	defer release()

	confirmed, err := uc.reservationRepo.ConfirmPayment(ctx, current.ID, current.Version,
		strings.TrimSpace(req.PaymentMethod), req.PaymentProofRef)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrVersionConflict) {
			uc.logger.Warn("ConfirmPayment: reservation id=%d version=%d is stale", current.ID, current.Version)
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("ConfirmPayment: failed to confirm reservation id=%d: %v", current.ID, err)
		return nil, fmt.Errorf("%w: confirm payment: %v", ErrInternal, err)
	}

	return confirmed, nil
}

// refresh перечитывает бронирования площадки на дату и пересчитывает слоты
func (uc *UseCase) refresh(ctx context.Context, confirmed *domain.Reservation) *Response {
	resp := &Response{Reservation: confirmed}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID: confirmed.VenueID,
		Date:    &confirmed.Date,
	})
	if err != nil {
		uc.logger.Warn("ConfirmPayment: venue=%d, date=%s refresh failed: %v", confirmed.VenueID, confirmed.Date, err)
		return resp
	}

	slots, err := uc.deriver.Derive(ctx, confirmed.VenueID, confirmed.Date)
	if err != nil {
		uc.logger.Warn("ConfirmPayment: venue=%d, date=%s refresh failed: %v", confirmed.VenueID, confirmed.Date, err)
		return resp
	}

	domain.SortByCreatedDesc(reservations)
	resp.Reservations = reservations
	resp.Slots = slots
	resp.Refreshed = true
	return resp
}

// notifyAsync отправляет уведомление вне контекста запроса
func (uc *UseCase) notifyAsync(r *domain.Reservation) {
	n := newNotification(r)

	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.NotifyReservationConfirmed(ctx, n); err != nil {
			uc.logger.Warn("ConfirmPayment: notification for reservation id=%d failed: %v", n.ReservationID, err)
		}
	}()
}

// Wait дожидается завершения фоновых отправок уведомлений
func (uc *UseCase) Wait() {
	uc.pending.Wait()
}
