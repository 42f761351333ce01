package get_slots

import (
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
	getSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	VenueID   int64                 `json:"venueId"`
	Date      string                `json:"date"`
	Slots     []models.SlotResponse `json:"slots"`
	Available int                   `json:"available"`
	Occupied  int                   `json:"occupied"`
	Past      int                   `json:"past"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	return &SlotsResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date,
		Slots:     models.FromDomainSlots(resp.Slots),
		Available: resp.Available,
		Occupied:  resp.Occupied,
		Past:      resp.Past,
	}
}
