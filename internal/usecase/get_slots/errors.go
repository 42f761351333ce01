package get_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_slots: invalid input data: %w", domain.ErrMalformedInput)

	// ErrInternal возвращается при ошибке хранилища
	ErrInternal = fmt.Errorf("get_slots: %w", domain.ErrStorageFailure)
)
