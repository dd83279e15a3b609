package blockedslots

import (
	"context"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	List(ctx context.Context, roomID *domain.RoomID) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id domain.BlockedSlotID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
