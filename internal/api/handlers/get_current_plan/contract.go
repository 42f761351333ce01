package get_current_plan

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	CurrentPlan(ctx context.Context, adminID int64) (*models.CurrentPlanResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
