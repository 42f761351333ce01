package invitations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// InvitationRepository журнал событий кодов приглашения
type InvitationRepository interface {
	Append(ctx context.Context, event *domain.InvitationEvent) (*domain.InvitationEvent, error)
	ListByCode(ctx context.Context, code string) ([]*domain.InvitationEvent, error)
	ListByVenue(ctx context.Context, venueID int64) ([]*domain.InvitationEvent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики проверок кодов
type Metrics interface {
	ObserveInvitationValidation(outcome string)
}

// CodeGenerator генерирует новый код приглашения
type CodeGenerator func() string

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
