package toggle_slot

import (
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Action действие над слотом
type Action string

const (
	ActionBlock   Action = "block"
	ActionUnblock Action = "unblock"
)

// Request модель запроса на блокировку/разблокировку слота администратором
type Request struct {
	VenueID   int64
	VenueName string
	Date      string
	ClockTime types.TimeString
	AdminID   int64
	Action    Action
}

// Response модель ответа: пересчитанный день площадки
type Response struct {
	VenueID   int64
	Date      string
	ClockTime types.TimeString
	Action    Action
	Slots     []domain.Slot
	Refreshed bool // false, если изменение сохранено, но пересчёт слотов не удался
}
