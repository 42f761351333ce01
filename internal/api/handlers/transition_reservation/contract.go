package transition_reservation

import (
	"context"

	transitionReservation "github.com/m04kA/SMC-CourtBooking/internal/usecase/transition_reservation"
)

type TransitionReservationUseCase interface {
	Execute(ctx context.Context, req *transitionReservation.Request) (*transitionReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
