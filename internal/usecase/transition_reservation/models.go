package transition_reservation

import (
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	ReservationID int64
	Target        string // pending | confirmed | completed | cancelled
}

// Response модель ответа: обновлённое бронирование и пересчитанный день площадки
type Response struct {
	Reservation  *domain.Reservation
	Reservations []*domain.Reservation // бронирования площадки на дату, новые первыми
	Slots        []domain.Slot
	Refreshed    bool // false, если статус сохранён, но пересчёт не удался
}
