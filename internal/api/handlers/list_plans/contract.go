package list_plans

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	ListPlans(ctx context.Context) (*models.PlanListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
