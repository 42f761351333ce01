package confirm_payment

import (
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifier"
)

// Request модель запроса на подтверждение оплаты
type Request struct {
	ReservationID   int64
	PaymentMethod   string // transfer, cash, card...
	PaymentProofRef string // ссылка на чек/скриншот (опционально)
}

// Response модель ответа с подтверждённым бронированием
type Response struct {
	Reservation  *domain.Reservation
	Reservations []*domain.Reservation // бронирования площадки на дату, новые первыми
	Slots        []domain.Slot
	Refreshed    bool // false, если оплата сохранена, но пересчёт не удался
}

func newNotification(r *domain.Reservation) notifier.ReservationConfirmed {
	method := ""
	if r.PaymentMethod != nil {
		method = *r.PaymentMethod
	}
	return notifier.ReservationConfirmed{
		ReservationID: r.ID,
		VenueName:     r.VenueName,
		CustomerName:  r.CustomerName,
		Date:          r.Date,
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		PaymentMethod: method,
	}
}
