package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const endOfDay types.TimeString = "23:59"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is required and must be at most %d chars", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerPhone != nil && len(*req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrInvalidInput)
	}

	if err := domain.ValidateDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
		}
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}

// resolveEndTime возвращает время окончания, по умолчанию один слот
func resolveEndTime(req *Request) types.TimeString {
	if req.EndTime != nil {
		return *req.EndTime
	}
	end, err := req.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		// слот в 23:00 заканчивается в конце суток
		return endOfDay
	}
	return end
}

// validateSlot проверяет, что бронирование укладывается в каталог и не в прошлом
func validateSlot(catalog domain.DailyCatalog, date string, start, end types.TimeString, now time.Time) error {
	if !catalog.Contains(start) {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, start)
	}

	endMinutes, err := end.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if endMinutes > (catalog.EndHour*60 + domain.SlotDurationMinutes) {
		return fmt.Errorf("%w: reservation ends after the last slot (%s)", ErrInvalidTimeSlot, end)
	}

	if domain.IsSlotInPast(date, start, now) {
		return ErrSlotInPast
	}

	return nil
}
