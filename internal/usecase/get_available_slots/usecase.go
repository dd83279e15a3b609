package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

// UseCase use case для получения сетки доступных слотов комнаты на день
type UseCase struct {
	rooms           RoomProvider
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	calendar        *timeutil.Calendar
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rooms RoomProvider,
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	calendar *timeutil.Calendar,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		rooms:           rooms,
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		calendar:        calendar,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day, _ := uc.calendar.DayBounds(req.Date)
	uc.logger.Info("GetAvailableSlots: room=%s, date=%s", req.RoomID, day.Format(domain.DateFormat))

	room, err := uc.rooms.Get(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomsService.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	slots := generateGrid(day, uc.calendar.Location(), uc.opts)
	if len(slots) == 0 {
		return &Response{RoomID: room.ID, RoomName: room.Name, Date: day, Slots: slots}, nil
	}

	gridStart, gridEnd := slots[0].Start, slots[len(slots)-1].End

	bookings, err := uc.bookingRepo.OverlappingBookings(ctx, req.RoomID, gridStart, gridEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockedSlotRepo.OverlappingBlocks(ctx, req.RoomID, gridStart, gridEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	slots = markOccupied(slots, bookings, blocks, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: generated %d slots for room=%s, date=%s",
		len(slots), req.RoomID, day.Format(domain.DateFormat))

	return &Response{
		RoomID:   room.ID,
		RoomName: room.Name,
		Date:     day,
		Slots:    slots,
	}, nil
}
