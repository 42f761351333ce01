package code_history

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
)

type InvitationService interface {
	History(ctx context.Context, code string) (*models.InvitationHistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
