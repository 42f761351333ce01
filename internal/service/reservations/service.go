package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
)

// Service сервис чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// ListReservations получает бронирования площадки (опционально на дату), новые первыми
func (s *Service) ListReservations(ctx context.Context, venueID int64, date *string) ([]*domain.Reservation, error) {
	if venueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if date != nil {
		if err := domain.ValidateDate(*date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	reservations, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		VenueID: venueID,
		Date:    date,
	})
	if err != nil {
		s.logger.Error("ListReservations: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: ListReservations - repository error: %v", ErrInternal, err)
	}

	domain.SortByCreatedDesc(reservations)
	return reservations, nil
}

// GetVenueReservations получает бронирования площадки с фильтром по статусу и счётчиками
func (s *Service) GetVenueReservations(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetVenueReservations: venue=%d", req.VenueID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", *req.Date)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	var status *domain.ReservationStatus
	if req.Status != nil {
		parsed, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetVenueReservations: invalid status=%s for venue=%d", *req.Status, req.VenueID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	all, err := s.ListReservations(ctx, req.VenueID, req.Date)
	if err != nil {
		return nil, err
	}

	filtered := domain.FilterByStatus(all, status)

	s.logger.Info("GetVenueReservations: fetched %d of %d reservations for venue=%d", len(filtered), len(all), req.VenueID)
	return models.FromDomainReservationList(filtered, all), nil
}

// GetByID получает бронирование по ID
// Клиент видит только своё бронирование, администратор площадки видит любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && reservation.CustomerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}
