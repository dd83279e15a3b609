package get_daily_usage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

// UseCase показывает, сколько минут дневной квоты пользователь уже израсходовал в комнате
type UseCase struct {
	rooms        RoomProvider
	bookingRepo  BookingRepository
	calendar     *timeutil.Calendar
	quotaMinutes int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rooms RoomProvider, bookingRepo BookingRepository, calendar *timeutil.Calendar, quotaMinutes int, logger Logger) *UseCase {
	return &UseCase{
		rooms:        rooms,
		bookingRepo:  bookingRepo,
		calendar:     calendar,
		quotaMinutes: quotaMinutes,
		logger:       logger,
	}
}

// Execute считает использование квоты так же, как проверка при создании бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.DailyUsage, error) {
	if req == nil || strings.TrimSpace(string(req.UserID)) == "" || strings.TrimSpace(string(req.RoomID)) == "" || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: userID, roomID and date are required", ErrInvalidInput)
	}

	if _, err := uc.rooms.Get(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomsService.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetDailyUsage: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	dayStart, dayEnd := uc.calendar.DayBounds(req.Date)
	bookings, err := uc.bookingRepo.DayBookings(ctx, req.RoomID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetDailyUsage: failed to get bookings for room=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	used := 0
	for _, booking := range bookings {
		if booking.UserID == req.UserID && booking.HoldsSlot() {
			used += booking.DurationMinutes
		}
	}

	usage := domain.NewDailyUsage(req.UserID, req.RoomID, dayStart, used, uc.quotaMinutes)
	uc.logger.Info("GetDailyUsage: user=%s, room=%s, date=%s, used=%d, remaining=%d",
		req.UserID, req.RoomID, dayStart.Format(domain.DateFormat), usage.UsedMinutes, usage.RemainingMinutes)

	return &usage, nil
}
