package get_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// UseCase use case получения состояния всех слотов площадки на дату
type UseCase struct {
	reservationRepo ReservationRepository
	catalog         domain.DailyCatalog
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location часовой пояс площадок, в котором интерпретируются дата и время слота
func NewUseCase(
	reservationRepo ReservationRepository,
	catalog domain.DailyCatalog,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
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

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetSlots: venue=%d, date=%s", req.VenueID, req.Date)

	slots, err := uc.Derive(ctx, req.VenueID, req.Date)
	if err != nil {
		return nil, err
	}

	resp := newResponse(req.VenueID, req.Date, slots)
	uc.logger.Info("GetSlots: venue=%d, date=%s: available=%d, occupied=%d, past=%d",
		req.VenueID, req.Date, resp.Available, resp.Occupied, resp.Past)

	return resp, nil
}

// Derive загружает занятость и пересчитывает весь день заново
// Используется и другими use case после любой мутации бронирований
func (uc *UseCase) Derive(ctx context.Context, venueID int64, date string) ([]domain.Slot, error) {
	// Время фиксируется один раз на весь расчёт
	now := uc.timeProvider.Now().In(uc.location)

	occupied := make(domain.OccupiedSet)

	// По некорректной дате в хранилище ничего быть не может, запрос не выполняем
	if err := domain.ValidateDate(date); err != nil {
		uc.logger.Warn("GetSlots: venue=%d, malformed date %q, deriving by occupancy only", venueID, date)
		return domain.DeriveSlots(venueID, date, occupied, now, uc.catalog), nil
	}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID:  venueID,
		Date:     &date,
		Statuses: domain.OccupyingStatuses,
	})
	if err != nil {
		uc.logger.Error("GetSlots: failed to list reservations venue=%d, date=%s: %v", venueID, date, err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	occupied = domain.OccupiedClockTimes(reservations, uc.catalog)
	return domain.DeriveSlots(venueID, date, occupied, now, uc.catalog), nil
}
