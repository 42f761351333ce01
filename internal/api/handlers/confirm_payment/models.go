package confirm_payment

import (
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
	confirmPayment "github.com/m04kA/SMC-CourtBooking/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	PaymentMethod   string `json:"paymentMethod"`
	PaymentProofRef string `json:"paymentProofRef,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest(reservationID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		ReservationID:   reservationID,
		PaymentMethod:   r.PaymentMethod,
		PaymentProofRef: r.PaymentProofRef,
	}
}

// ConfirmPaymentResponse HTTP response model
// При refreshed=false оплата сохранена, а reservations и slots не заполнены
type ConfirmPaymentResponse struct {
	Reservation  *models.ReservationResponse  `json:"reservation"`
	Reservations []models.ReservationResponse `json:"reservations"`
	Slots        []models.SlotResponse        `json:"slots"`
	Refreshed    bool                         `json:"refreshed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		Reservation:  models.FromDomainReservation(resp.Reservation),
		Reservations: models.FromDomainReservations(resp.Reservations),
		Slots:        models.FromDomainSlots(resp.Slots),
		Refreshed:    resp.Refreshed,
	}
}
