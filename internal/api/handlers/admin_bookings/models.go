package admin_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from и to - даты YYYY-MM-DD, обе включительно
func ToServiceRequest(calendar Calendar, roomIDStr, userIDStr, statusStr, fromStr, toStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if roomIDStr != "" {
		req.RoomID = &roomIDStr
	}
	if userIDStr != "" {
		req.UserID = &userIDStr
	}
	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := calendar.ParseDate(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := calendar.ParseDate(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		_, toEnd := calendar.DayBounds(to)
		req.To = &toEnd
	}

	return req, nil
}
