package get_available_slots

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
	OverlappingBookings(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	OverlappingBlocks(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.BlockedSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
