package confirm_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" || len(method) > domain.MaxDetailLength {
		return fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}

	if len(req.PaymentProofRef) > domain.MaxPaymentRefLength {
		return fmt.Errorf("%w: paymentProofRef must be at most %d chars", ErrInvalidInput, domain.MaxPaymentRefLength)
	}

	return nil
}
