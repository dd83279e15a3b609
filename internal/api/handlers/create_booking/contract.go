package create_booking

import (
	"context"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type RoomProvider interface {
	Get(ctx context.Context, id domain.RoomID) (*domain.Room, error)
}

type UserProvider interface {
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
