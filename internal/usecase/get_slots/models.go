package get_slots

import "github.com/m04kA/SMC-CourtBooking/internal/domain"

// Request модель запроса слотов площадки на дату
type Request struct {
	VenueID int64  // ID площадки
	Date    string // Дата в формате YYYY-MM-DD; некорректная дата не считается ошибкой
}

// Response модель ответа со всеми слотами каталога
type Response struct {
	VenueID   int64
	Date      string
	Slots     []domain.Slot // В порядке каталога
	Available int           // Количество свободных слотов
	Occupied  int           // Количество занятых слотов
	Past      int           // Количество прошедших слотов
}

func newResponse(venueID int64, date string, slots []domain.Slot) *Response {
	resp := &Response{VenueID: venueID, Date: date, Slots: slots}
	for _, s := range slots {
		switch s.State {
		case domain.SlotAvailable:
			resp.Available++
		case domain.SlotOccupied:
			resp.Occupied++
		case domain.SlotPast:
			resp.Past++
		}
	}
	return resp
}
