package create_blocked_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// RoomProvider источник данных о комнатах
type RoomProvider interface {
	Get(ctx context.Context, id domain.RoomID) (*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockRoom(ctx context.Context, roomID domain.RoomID) error
	OverlappingBookings(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
}

// RoomMutex сериализует изменения занятости одной комнаты внутри процесса
type RoomMutex interface {
	LockContext(ctx context.Context, key string) (unlock func(), err error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

func newBlockedSlotID() domain.BlockedSlotID {
	return domain.BlockedSlotID(uuid.NewString())
}
