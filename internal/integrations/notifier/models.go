package notifier

// ReservationConfirmed данные уведомления о подтверждённом бронировании
type ReservationConfirmed struct {
	ReservationID int64
	VenueName     string
	CustomerName  string
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM, может быть пустым
	PaymentMethod string
}

// TimeRange диапазон времени для текста уведомления
func (n ReservationConfirmed) TimeRange() string {
	if n.EndTime == "" {
		return n.StartTime
	}
	return n.StartTime + " - " + n.EndTime
}
