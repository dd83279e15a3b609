package admin_rooms

import (
	"context"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms/models"
)

type RoomService interface {
	Create(ctx context.Context, req *models.RoomRequest) (*domain.Room, error)
	Update(ctx context.Context, id domain.RoomID, req *models.RoomRequest) (*domain.Room, error)
	Delete(ctx context.Context, id domain.RoomID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
