package subscriptions

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrPlanNotFound возвращается, когда тариф не найден
	ErrPlanNotFound = fmt.Errorf("subscriptions: plan not found: %w", domain.ErrNotFound)

	// ErrSubscriptionNotFound возвращается, когда у администратора нет подписки
	ErrSubscriptionNotFound = fmt.Errorf("subscriptions: subscription not found: %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается при недопустимой смене статуса подписки
	ErrInvalidTransition = fmt.Errorf("subscriptions: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("subscriptions: invalid input data: %w", domain.ErrMalformedInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("subscriptions: %w", domain.ErrStorageFailure)
)
