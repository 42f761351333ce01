package toggle_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
)

// endOfDay время окончания блокировки последнего часа суток
const endOfDay = "23:59"

// UseCase use case ручной блокировки и освобождения слотов администратором
type UseCase struct {
	reservationRepo ReservationRepository
	deriver         SlotDeriver
	locker          Locker
	metrics         Metrics
	catalog         domain.DailyCatalog
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	deriver SlotDeriver,
	locker Locker,
	metrics Metrics,
	catalog domain.DailyCatalog,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		deriver:         deriver,
		locker:          locker,
		metrics:         metrics,
		catalog:         catalog,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute блокирует или освобождает слот и возвращает пересчитанный день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		action := "unknown"
		if req != nil {
			action = string(req.Action)
		}
		uc.metrics.ObserveSlotToggle(action, domain.Kind(err))
	}()

	if err := validateRequest(req, uc.catalog); err != nil {
		uc.logger.Warn("ToggleSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ToggleSlot: admin=%d, venue=%d, date=%s, time=%s, action=%s",
		req.AdminID, req.VenueID, req.Date, req.ClockTime, req.Action)

	now := uc.timeProvider.Now().In(uc.location)
	if domain.IsSlotInPast(req.Date, req.ClockTime, now) {
		uc.logger.Warn("ToggleSlot: venue=%d, date=%s, time=%s is in the past", req.VenueID, req.Date, req.ClockTime)
		return nil, ErrSlotInPast
	}

	release, err := uc.locker.Acquire(ctx, locker.SlotKey(req.VenueID, req.Date))
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			uc.logger.Warn("ToggleSlot: venue=%d, date=%s schedule is busy", req.VenueID, req.Date)
			return nil, ErrScheduleBusy
		}
		uc.logger.Error("ToggleSlot: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: acquire lock: %v", ErrInternal, err)
	}
	defer release()

	existing, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID:  req.VenueID,
		Date:     &req.Date,
		Statuses: domain.OccupyingStatuses,
	})
	if err != nil {
		uc.logger.Error("ToggleSlot: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	switch req.Action {
	case ActionBlock:
		err = uc.block(ctx, req, existing)
	case ActionUnblock:
		err = uc.unblock(ctx, req, existing)
	}
	if err != nil {
		return nil, err
	}

	resp = &Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		ClockTime: req.ClockTime,
		Action:    req.Action,
	}

	// Изменение уже сохранено, ошибка пересчёта его не отменяет
	slots, derr := uc.deriver.Derive(ctx, req.VenueID, req.Date)
	if derr != nil {
		uc.logger.Warn("ToggleSlot: venue=%d, date=%s refresh failed: %v", req.VenueID, req.Date, derr)
		return resp, nil
	}
	resp.Slots = slots
	resp.Refreshed = true

	return resp, nil
}

func (uc *UseCase) block(ctx context.Context, req *Request, existing []*domain.Reservation) error {
	if domain.OccupiedClockTimes(existing, uc.catalog).Has(req.ClockTime) {
		uc.logger.Warn("ToggleSlot: venue=%d, date=%s, time=%s is already occupied", req.VenueID, req.Date, req.ClockTime)
		return ErrSlotOccupied
	}

	end, err := req.ClockTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		end = endOfDay
	}

	created, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		VenueID:      req.VenueID,
		VenueName:    req.VenueName,
		CustomerID:   req.AdminID,
		CustomerName: string(domain.KindBlock),
		Date:         req.Date,
		StartTime:    req.ClockTime,
		EndTime:      end,
		Kind:         domain.KindBlock,
		Status:       domain.StatusConfirmed,
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			return ErrSlotOccupied
		}
		uc.logger.Error("ToggleSlot: failed to create block: %v", err)
		return fmt.Errorf("%w: create block: %v", ErrInternal, err)
	}

	uc.logger.Info("ToggleSlot: block id=%d created", created.ID)
	return nil
}

func (uc *UseCase) unblock(ctx context.Context, req *Request, existing []*domain.Reservation) error {
	var block *domain.Reservation
	for _, r := range existing {
		if !r.IsActive() || !r.Covers(req.ClockTime, uc.catalog) {
			continue
		}
		if !r.IsBlock() {
			uc.logger.Warn("ToggleSlot: venue=%d, date=%s, time=%s is held by reservation id=%d",
				req.VenueID, req.Date, req.ClockTime, r.ID)
			return ErrSlotHeldByBooking
		}
		block = r
	}

	if block == nil {
		return ErrBlockNotFound
	}

	if err := uc.reservationRepo.DeleteBlock(ctx, block.ID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrBlockNotFound
		}
		uc.logger.Error("ToggleSlot: failed to delete block id=%d: %v", block.ID, err)
		return fmt.Errorf("%w: delete block: %v", ErrInternal, err)
	}

	uc.logger.Info("ToggleSlot: block id=%d removed", block.ID)
	return nil
}
