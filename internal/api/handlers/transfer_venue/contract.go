package transfer_venue

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/invitations/models"
)

type InvitationService interface {
	Transfer(ctx context.Context, venueID, newAdminID, superAdminID int64, detail string) (*models.InvitationEventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
