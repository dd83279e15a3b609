package admin_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	Delete(ctx context.Context, id domain.BookingID) error
}

// Calendar разбирает даты в часовом поясе коворкинга
type Calendar interface {
	ParseDate(value string) (time.Time, error)
	DayBounds(t time.Time) (start, end time.Time)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
