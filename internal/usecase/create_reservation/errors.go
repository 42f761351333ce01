package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_reservation: invalid input data: %w", domain.ErrMalformedInput)

	// ErrInvalidTimeSlot возвращается, когда время не входит в дневной каталог
	ErrInvalidTimeSlot = fmt.Errorf("create_reservation: time is not in the daily catalog: %w", domain.ErrMalformedInput)

	// ErrSlotInPast возвращается при попытке забронировать прошедший слот
	ErrSlotInPast = fmt.Errorf("create_reservation: slot is in the past: %w", domain.ErrMalformedInput)

	// ErrSlotNotAvailable возвращается, когда слот уже занят неотменённой записью
	ErrSlotNotAvailable = fmt.Errorf("create_reservation: slot is not available: %w", domain.ErrConflict)

	// ErrScheduleBusy возвращается, если расписание площадки сейчас изменяет другой запрос
	ErrScheduleBusy = fmt.Errorf("create_reservation: venue schedule is locked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_reservation: %w", domain.ErrStorageFailure)
)
