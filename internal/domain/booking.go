package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a room reservation
type Booking struct {
	ID              BookingID
	UserID          UserID
	Username        string // денормализовано для истории и админки
	RoomID          RoomID
	RoomName        string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Status          BookingStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking has not been completed or cancelled
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// HoldsSlot returns true if the booking still occupies its interval and counts
// toward the owner's daily quota
func (b *Booking) HoldsSlot() bool {
	return b.Status == StatusActive || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// HasEnded returns true if the booking end is not after now
func (b *Booking) HasEnded(now time.Time) bool {
	return !b.End.After(now)
}

// BookingsFilter фильтр для административного списка бронирований
type BookingsFilter struct {
	RoomID *RoomID
	UserID *UserID
	From   *time.Time // start_time >= From
	To     *time.Time // start_time < To
	Status *BookingStatus
}
