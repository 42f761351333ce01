package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	ConfirmPayment(ctx context.Context, id, expectedVersion int64, method, proofRef string) (*domain.Reservation, error)
}

// SlotDeriver пересчитывает слоты площадки на дату
type SlotDeriver interface {
	Derive(ctx context.Context, venueID int64, date string) ([]domain.Slot, error)
}

// Locker блокировка расписания площадки на дату
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

// Notifier отправитель уведомлений о подтверждении
type Notifier interface {
	NotifyReservationConfirmed(ctx context.Context, n notifier.ReservationConfirmed) error
}

// Metrics счётчики переходов статусов
type Metrics interface {
	ObserveTransition(from, to, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
