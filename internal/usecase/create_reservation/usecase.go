package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
)

// UseCase use case для создания бронирования слота
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	locker          Locker
	catalog         domain.DailyCatalog
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	locker Locker,
	catalog domain.DailyCatalog,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		locker:          locker,
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

// Execute выполняет use case создания бронирования
// Проверка занятости и вставка выполняются под блокировкой расписания в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: customer=%d, venue=%d, date=%s, time=%s",
		req.CustomerID, req.VenueID, req.Date, req.StartTime)

	// 2. Проверяем слот по каталогу и текущему времени площадки
	now := uc.timeProvider.Now().In(uc.location)
	endTime := resolveEndTime(req)
	if err := validateSlot(uc.catalog, req.Date, req.StartTime, endTime, now); err != nil {
		uc.logger.Warn("CreateReservation: slot validation failed: %v", err)
		return nil, err
	}

	// 3. Блокируем расписание площадки на дату
	release, err := uc.locker.Acquire(ctx, locker.SlotKey(req.VenueID, req.Date))
	if err != nil {
		if errors.Is(err, locker.ErrNotAcquired) {
			uc.logger.Warn("CreateReservation: venue=%d, date=%s schedule is busy", req.VenueID, req.Date)
			return nil, ErrScheduleBusy
		}
		uc.logger.Error("CreateReservation: failed to acquire lock: %v", err)
		return nil, fmt.Errorf("%w: acquire lock: %v", ErrInternal, err)
	}
	defer release()

	candidate := &domain.Reservation{
		VenueID:       req.VenueID,
		VenueName:     strings.TrimSpace(req.VenueName),
		CustomerID:    req.CustomerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       endTime,
		Price:         req.Price,
		Kind:          domain.KindBooking,
		Status:        domain.StatusPending,
	}

	var result *domain.Reservation

	// 4. Проверка пересечений и создание в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.List(txCtx, domain.ReservationFilter{
			VenueID:  req.VenueID,
			Date:     &req.Date,
			Statuses: domain.OccupyingStatuses,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
		}

		occupied := domain.OccupiedClockTimes(existing, uc.catalog)
		for _, t := range candidate.CoveredClockTimes(uc.catalog) {
			if occupied.Has(t) {
				uc.logger.Warn("CreateReservation: venue=%d, date=%s, time=%s is occupied", req.VenueID, req.Date, t)
				return fmt.Errorf("%w: %s", ErrSlotNotAvailable, t)
			}
		}

		created, err := uc.reservationRepo.Create(txCtx, candidate)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: slot taken concurrently venue=%d, date=%s, time=%s",
					req.VenueID, req.Date, req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if isOwnError(err) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, venue=%d, date=%s, time=%s",
		result.ID, result.VenueID, result.Date, result.StartTime)

	return newResponse(result), nil
}

func isOwnError(err error) bool {
	return errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal)
}
