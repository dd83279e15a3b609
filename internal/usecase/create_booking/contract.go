package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// SlotRepository источник занятости комнаты для проверок допуска
type SlotRepository interface {
	// DayBookings возвращает занимающие слот бронирования комнаты, начинающиеся в [dayStart, dayEnd)
	DayBookings(ctx context.Context, roomID domain.RoomID, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
	OverlappingBookings(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.Booking, error)
}

// BookingWriter сохраняет допущенное бронирование
type BookingWriter interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RoomLocker блокирует комнату в рамках текущей транзакции
type RoomLocker interface {
	LockRoom(ctx context.Context, roomID domain.RoomID) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SlotRepository
	BookingWriter
	RoomLocker
}

// BlockedSlotRepository интерфейс репозитория блокировок комнат
type BlockedSlotRepository interface {
	OverlappingBlocks(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.BlockedSlot, error)
}

// RoomMutex сериализует допуск бронирований одной комнаты внутри процесса
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

// IDGenerator генерирует идентификаторы новых бронирований
type IDGenerator interface {
	NewBookingID() domain.BookingID
}

// MetricsRecorder учитывает результаты допуска
type MetricsRecorder interface {
	ObserveAdmission(result string)
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

// UUIDGenerator генерирует UUID v4
type UUIDGenerator struct{}

// NewBookingID возвращает новый случайный идентификатор
func (UUIDGenerator) NewBookingID() domain.BookingID {
	return domain.BookingID(uuid.NewString())
}
