package transition_reservation

import (
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
	transitionReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/transition_reservation"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status"` // pending | confirmed | completed | cancelled
}

// TransitionResponse HTTP response model
// При refreshed=false статус сохранён, а reservations и slots не заполнены
type TransitionResponse struct {
	Reservation  *models.ReservationResponse  `json:"reservation"`
	Reservations []models.ReservationResponse `json:"reservations"`
	Slots        []models.SlotResponse        `json:"slots"`
	Refreshed    bool                         `json:"refreshed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(reservationID int64) *transitionReservation.Request {
	return &transitionReservation.Request{
		ReservationID: reservationID,
		Target:        r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionReservation.Response) *TransitionResponse {
	return &TransitionResponse{
		Reservation:  models.FromDomainReservation(resp.Reservation),
		Reservations: models.FromDomainReservations(resp.Reservations),
		Slots:        models.FromDomainSlots(resp.Slots),
		Refreshed:    resp.Refreshed,
	}
}
