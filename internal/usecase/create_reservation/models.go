package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VenueID       int64             // ID площадки
	VenueName     string            // Название площадки (снимок на момент бронирования)
	CustomerID    int64             // ID клиента
	CustomerName  string            // Имя клиента (снимок)
	CustomerPhone *string           // Телефон клиента (опционально)
	Date          string            // Дата, YYYY-MM-DD
	StartTime     types.TimeString  // Время начала, должно входить в каталог
	EndTime       *types.TimeString // Время окончания (опционально, по умолчанию +1 час)
	Price         float64           // Цена
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	VenueID       int64
	VenueName     string
	CustomerID    int64
	CustomerName  string
	CustomerPhone *string
	Date          string
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         float64
	Status        string
	CreatedAt     time.Time
}

func newResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		VenueID:       r.VenueID,
		VenueName:     r.VenueName,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Price:         r.Price,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
