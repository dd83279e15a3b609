package get_daily_usage

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// RoomProvider источник данных о комнатах
type RoomProvider interface {
	Get(ctx context.Context, id domain.RoomID) (*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DayBookings(ctx context.Context, roomID domain.RoomID, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
