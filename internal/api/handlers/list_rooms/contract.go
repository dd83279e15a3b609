package list_rooms

import (
	"context"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

type RoomService interface {
	List(ctx context.Context) ([]*domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
