package get_venue_reservations

import (
	"github.com/m04kA/SMC-CourtBooking/internal/service/reservations/models"
)

// ToServiceRequest создает запрос к сервису из query параметров
// Пустые параметры означают отсутствие фильтра
func ToServiceRequest(venueID int64, dateStr, statusStr string) *models.ListReservationsRequest {
	req := &models.ListReservationsRequest{VenueID: venueID}

	if dateStr != "" {
		req.Date = &dateStr
	}
	if statusStr != "" {
		req.Status = &statusStr
	}

	return req
}
