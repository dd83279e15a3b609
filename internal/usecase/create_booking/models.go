package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// Options правила допуска
type Options struct {
	MaxDurationMinutes int
	DailyQuotaMinutes  int
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID   domain.UserID
	Username string
	RoomID   domain.RoomID
	RoomName string
	Start    time.Time
	End      time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              domain.BookingID
	UserID          domain.UserID
	Username        string
	RoomID          domain.RoomID
	RoomName        string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Status          domain.BookingStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Результаты допуска для метрик
const (
	resultAdmitted        = "admitted"
	resultInvalid         = "invalid"
	resultQuotaExceeded   = "quota_exceeded"
	resultSlotUnavailable = "slot_unavailable"
	resultStorageFailure  = "storage_unavailable"
)
