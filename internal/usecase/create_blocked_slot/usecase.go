package create_blocked_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
)

// UseCase use case блокировки комнаты администратором
type UseCase struct {
	rooms           RoomProvider
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	txManager       TransactionManager
	roomLocks       RoomMutex
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// roomLocks должен быть тем же, что и у создания бронирований
func NewUseCase(
	rooms RoomProvider,
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	txManager TransactionManager,
	roomLocks RoomMutex,
	logger Logger,
) *UseCase {
	return &UseCase{
		rooms:           rooms,
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		txManager:       txManager,
		roomLocks:       roomLocks,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает блокировку, если в интервале нет занимающих слот бронирований
// Проверка и запись выполняются под той же блокировкой комнаты, что и допуск бронирований
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BlockedSlot, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlockedSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBlockedSlot: room=%s, start=%s, end=%s",
		req.RoomID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	room, err := uc.rooms.Get(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomsService.ErrRoomNotFound) {
			uc.logger.Warn("CreateBlockedSlot: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBlockedSlot: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	unlock, err := uc.roomLocks.LockContext(ctx, string(req.RoomID))
	if err != nil {
		return nil, fmt.Errorf("%w: wait for room lock: %v", ErrInternal, err)
	}
	defer unlock()

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = domain.DefaultBlockReason
	}

	var result *domain.BlockedSlot

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockRoom(txCtx, req.RoomID); err != nil {
			return fmt.Errorf("%w: lock room: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.OverlappingBookings(txCtx, req.RoomID, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("%w: get overlapping bookings: %v", ErrInternal, err)
		}
		if len(bookings) > 0 {
			return fmt.Errorf("%w: %d booking(s), first %s", ErrConflictsWithBookings, len(bookings), bookings[0].ID)
		}

		created, err := uc.blockedSlotRepo.Create(txCtx, &domain.BlockedSlot{
			ID:        newBlockedSlotID(),
			RoomID:    room.ID,
			RoomName:  room.Name,
			Start:     req.Start,
			End:       req.End,
			Reason:    reason,
			CreatedAt: uc.timeProvider.Now(),
		})
		if err != nil {
			return fmt.Errorf("%w: create blocked slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrConflictsWithBookings) {
			uc.logger.Warn("CreateBlockedSlot: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBlockedSlot: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBlockedSlot: created blocked slot id=%s for room=%s", result.ID, result.RoomID)
	return result, nil
}
