package get_room

import (
	"context"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

type RoomService interface {
	Get(ctx context.Context, id domain.RoomID) (*domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
