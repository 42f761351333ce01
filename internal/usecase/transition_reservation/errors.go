package transition_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transition_reservation: invalid input data: %w", domain.ErrMalformedInput)

	// ErrReservationNotFound возвращается, если бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("transition_reservation: reservation not found: %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = fmt.Errorf("transition_reservation: %w", domain.ErrInvalidTransition)

	// ErrConcurrentUpdate возвращается, если бронирование изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("transition_reservation: reservation was modified concurrently: %w", domain.ErrConflict)

	// ErrScheduleBusy возвращается, если расписание площадки сейчас изменяет другой запрос
	ErrScheduleBusy = fmt.Errorf("transition_reservation: venue schedule is locked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("transition_reservation: %w", domain.ErrStorageFailure)
)
