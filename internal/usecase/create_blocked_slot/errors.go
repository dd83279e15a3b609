package create_blocked_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_blocked_slot: invalid input data")

	// ErrInvalidRange возвращается, когда конец блокировки не позже начала
	ErrInvalidRange = errors.New("create_blocked_slot: invalid time range")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_blocked_slot: room not found")

	// ErrConflictsWithBookings возвращается, когда в интервале уже есть бронирования
	ErrConflictsWithBookings = errors.New("create_blocked_slot: interval overlaps existing bookings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_blocked_slot: internal error")
)
