package confirm_payment

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("confirm_payment: invalid input data: %w", domain.ErrMalformedInput)

	// ErrReservationNotFound возвращается, если бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("confirm_payment: reservation not found: %w", domain.ErrNotFound)

	// ErrNotPending возвращается, если бронирование уже не ожидает оплаты
	ErrNotPending = fmt.Errorf("confirm_payment: reservation is not pending: %w", domain.ErrInvalidTransition)

	// ErrConcurrentUpdate возвращается, если бронирование изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("confirm_payment: reservation was modified concurrently: %w", domain.ErrConflict)

	// ErrScheduleBusy возвращается, если расписание площадки сейчас изменяет другой запрос
	ErrScheduleBusy = fmt.Errorf("confirm_payment: venue schedule is locked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("confirm_payment: %w", domain.ErrStorageFailure)
)
