package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/txmanager"
)

// UseCase use case допуска бронирования комнаты
type UseCase struct {
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	txManager       TransactionManager
	roomLocks       RoomMutex
	calendar        *timeutil.Calendar
	opts            Options
	timeProvider    TimeProvider
	idGenerator     IDGenerator
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// roomLocks должен быть общим со всеми операциями, меняющими занятость комнаты
func NewUseCase(
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	txManager TransactionManager,
	roomLocks RoomMutex,
	calendar *timeutil.Calendar,
	opts Options,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		txManager:       txManager,
		roomLocks:       roomLocks,
		calendar:        calendar,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		idGenerator:     UUIDGenerator{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute проверяет и сохраняет бронирование
//
// Проверки выполняются по порядку, первая неуспешная прерывает допуск:
// входные данные, корректность интервала, максимальная длительность,
// дневная квота пользователя в комнате, пересечение с бронированиями,
// пересечение с блокировками. Проверки квоты и пересечений и запись
// выполняются под блокировкой комнаты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(resultInvalid)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%s, room=%s, start=%s, end=%s",
		req.UserID, req.RoomID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	duration, err := timeutil.DurationMinutes(req.Start, req.End)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid range: %v", err)
		uc.observe(resultInvalid)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	if duration > uc.opts.MaxDurationMinutes {
		uc.logger.Warn("CreateBooking: duration %d exceeds %d minutes", duration, uc.opts.MaxDurationMinutes)
		uc.observe(resultInvalid)
		return nil, fmt.Errorf("%w: %d minutes, max %d", ErrDurationExceeded, duration, uc.opts.MaxDurationMinutes)
	}

	unlock, err := uc.roomLocks.LockContext(ctx, string(req.RoomID))
	if err != nil {
		uc.observe(resultStorageFailure)
		return nil, fmt.Errorf("%w: wait for room lock: %v", ErrStorageUnavailable, err)
	}
	defer unlock()

	booking, err := uc.admit(ctx, req, duration)
	if errors.Is(err, errCommitConflict) {
		// Конфликт с параллельной транзакцией: повторяем чтение, проверки и запись один раз
		uc.logger.Warn("CreateBooking: commit conflict for room=%s, retrying: %v", req.RoomID, err)
		booking, err = uc.admit(ctx, req, duration)
		if errors.Is(err, errCommitConflict) {
			uc.logger.Warn("CreateBooking: commit conflict again for room=%s: %v", req.RoomID, err)
			err = fmt.Errorf("%w: concurrent booking won the slot", ErrSlotUnavailable)
		}
	}

	if err != nil {
		uc.observe(resultFor(err))
		if errors.Is(err, ErrStorageUnavailable) {
			uc.logger.Error("CreateBooking: %v", err)
		} else {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
		}
		return nil, err
	}

	uc.observe(resultAdmitted)
	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)

	return &Response{
		ID:              booking.ID,
		UserID:          booking.UserID,
		Username:        booking.Username,
		RoomID:          booking.RoomID,
		RoomName:        booking.RoomName,
		Start:           booking.Start,
		End:             booking.End,
		DurationMinutes: booking.DurationMinutes,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}, nil
}

// admit выполняет одну попытку блокировки комнаты, чтения, проверки и записи
//
// Транзакция READ COMMITTED: каждый запрос видит снимок, сделанный после
// получения advisory-блокировки, поэтому чтения учитывают все бронирования,
// закоммиченные предыдущим владельцем блокировки
func (uc *UseCase) admit(ctx context.Context, req *Request, duration int) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockRoom(txCtx, req.RoomID); err != nil {
			return storageError("lock room", err)
		}

		// Квота проверяется раньше пересечений
		dayStart, dayEnd := uc.calendar.DayBounds(req.Start)
		dayBookings, err := uc.bookingRepo.DayBookings(txCtx, req.RoomID, dayStart, dayEnd)
		if err != nil {
			return storageError("get day bookings", err)
		}

		used := usedMinutes(dayBookings, req.UserID)
		if used+duration > uc.opts.DailyQuotaMinutes {
			remaining := uc.opts.DailyQuotaMinutes - used
			if remaining < 0 {
				remaining = 0
			}
			return &QuotaExceededError{Remaining: remaining}
		}

		overlapping, err := uc.bookingRepo.OverlappingBookings(txCtx, req.RoomID, req.Start, req.End)
		if err != nil {
			return storageError("get overlapping bookings", err)
		}
		if len(overlapping) > 0 {
			return fmt.Errorf("%w: overlaps booking %s", ErrSlotUnavailable, overlapping[0].ID)
		}

		blocks, err := uc.blockedSlotRepo.OverlappingBlocks(txCtx, req.RoomID, req.Start, req.End)
		if err != nil {
			return storageError("get blocked slots", err)
		}
		if len(blocks) > 0 {
			return fmt.Errorf("%w: room is blocked: %s", ErrSlotUnavailable, blocks[0].Reason)
		}

		booking := &domain.Booking{
			ID:              uc.idGenerator.NewBookingID(),
			UserID:          req.UserID,
			Username:        req.Username,
			RoomID:          req.RoomID,
			RoomName:        req.RoomName,
			Start:           req.Start,
			End:             req.End,
			DurationMinutes: duration,
			Status:          domain.StatusActive,
			CreatedAt:       uc.timeProvider.Now(),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return storageError("create booking", err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, txmanager.ErrSerializationFailure):
			return nil, fmt.Errorf("%w: %v", errCommitConflict, err)
		case errors.Is(err, errCommitConflict),
			errors.Is(err, ErrQuotaExceeded),
			errors.Is(err, ErrSlotUnavailable),
			errors.Is(err, ErrStorageUnavailable):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	return result, nil
}

// storageError отделяет конфликт с параллельной транзакцией, после которого
// попытку можно повторить, от отказа хранилища
func storageError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrSlotConflict) || txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", errCommitConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveAdmission(result)
	}
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		return resultQuotaExceeded
	case errors.Is(err, ErrSlotUnavailable):
		return resultSlotUnavailable
	default:
		return resultStorageFailure
	}
}
