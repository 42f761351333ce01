package toggle_slot

import (
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
	toggleSlot "github.com/m04kA/SMC-CourtBooking/internal/usecase/toggle_slot"
)

// BlockSlotRequest HTTP request model (тело необязательно)
type BlockSlotRequest struct {
	VenueName string `json:"venueName,omitempty"`
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	VenueID   int64                 `json:"venueId"`
	Date      string                `json:"date"`
	Time      string                `json:"time"`
	Action    string                `json:"action"`
	Slots     []models.SlotResponse `json:"slots"`
	Refreshed bool                  `json:"refreshed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleSlot.Response) *ToggleSlotResponse {
	return &ToggleSlotResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date,
		Time:      resp.ClockTime.String(),
		Action:    string(resp.Action),
		Slots:     models.FromDomainSlots(resp.Slots),
		Refreshed: resp.Refreshed,
	}
}
