package toggle_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/locker"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	DeleteBlock(ctx context.Context, id int64) error
}

// SlotDeriver пересчитывает слоты площадки на дату
type SlotDeriver interface {
	Derive(ctx context.Context, venueID int64, date string) ([]domain.Slot, error)
}

// Locker блокировка расписания площадки на дату
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.ReleaseFunc, error)
}

// Metrics счётчики переключений слотов
type Metrics interface {
	ObserveSlotToggle(action, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
