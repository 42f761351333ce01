package toggle_slot

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, catalog domain.DailyCatalog) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}

	if req.Action != ActionBlock && req.Action != ActionUnblock {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if err := domain.ValidateDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if !catalog.Contains(req.ClockTime) {
		return fmt.Errorf("%w: time %q is not in the daily catalog", ErrInvalidInput, req.ClockTime)
	}

	return nil
}
