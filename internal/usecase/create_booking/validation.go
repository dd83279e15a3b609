package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(string(req.UserID)) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if strings.TrimSpace(string(req.RoomID)) == "" {
		return fmt.Errorf("%w: roomID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.RoomName) == "" {
		return fmt.Errorf("%w: roomName is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}

// usedMinutes суммирует длительность бронирований пользователя
func usedMinutes(bookings []*domain.Booking, userID domain.UserID) int {
	used := 0
	for _, booking := range bookings {
		if booking.UserID == userID && booking.HoldsSlot() {
			used += booking.DurationMinutes
		}
	}
	return used
}
