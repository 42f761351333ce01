package subscriptions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// PlanRepository интерфейс репозитория тарифов
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
}

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
	GetCurrentByAdmin(ctx context.Context, adminID int64) (*domain.Subscription, error)
	Update(ctx context.Context, sub *domain.Subscription) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики смены тарифов
type Metrics interface {
	ObservePlanChange(plan, result string)
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
