package redeem_code

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
)

type InvitationService interface {
	Redeem(ctx context.Context, code string, adminID int64) (*models.InvitationEventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
