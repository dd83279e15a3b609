package admin_blocked_slots

import (
	"context"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/blockedslots/models"
	createBlockedSlot "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_blocked_slot"
)

type CreateBlockedSlotUseCase interface {
	Execute(ctx context.Context, req *createBlockedSlot.Request) (*domain.BlockedSlot, error)
}

type BlockedSlotService interface {
	List(ctx context.Context, roomID *domain.RoomID) (*models.BlockedSlotListResponse, error)
	Delete(ctx context.Context, id domain.BlockedSlotID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
