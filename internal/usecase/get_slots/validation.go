package get_slots

import "fmt"

// validateRequest валидирует входные данные запроса
// Формат даты не проверяется: слоты по некорректной дате строятся только по занятости
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	return nil
}
