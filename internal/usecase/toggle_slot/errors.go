package toggle_slot

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("toggle_slot: invalid input data: %w", domain.ErrMalformedInput)

	// ErrSlotInPast возвращается при попытке изменить прошедший слот
	ErrSlotInPast = fmt.Errorf("toggle_slot: slot is in the past: %w", domain.ErrMalformedInput)

	// ErrSlotOccupied возвращается при блокировке уже занятого слота
	ErrSlotOccupied = fmt.Errorf("toggle_slot: slot is already occupied: %w", domain.ErrConflict)

	// ErrSlotHeldByBooking возвращается, если слот занят бронированием клиента, а не блокировкой
	ErrSlotHeldByBooking = fmt.Errorf("toggle_slot: slot is held by a customer reservation: %w", domain.ErrConflict)

	// ErrBlockNotFound возвращается, если для слота нет блокировки
	ErrBlockNotFound = fmt.Errorf("toggle_slot: block not found: %w", domain.ErrNotFound)

	// ErrScheduleBusy возвращается, если расписание площадки сейчас изменяет другой запрос
	ErrScheduleBusy = fmt.Errorf("toggle_slot: venue schedule is locked: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("toggle_slot: %w", domain.ErrStorageFailure)
)
