package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

// Create сохраняет бронирование, отклоняя пересечение с занимающими слот
// бронированиями той же комнаты так же, как exclusion constraint в Postgres
func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if booking.HoldsSlot() {
		for _, existing := range r.s.bookings {
			if existing.RoomID != booking.RoomID || !existing.HoldsSlot() {
				continue
			}
			if timeutil.Overlaps(existing.Start, existing.End, booking.Start, booking.End) {
				return nil, fmt.Errorf("%w: Create - room=%s overlaps booking %s",
					bookingRepo.ErrSlotConflict, booking.RoomID, existing.ID)
			}
		}
	}

	booking.UpdatedAt = booking.CreatedAt
	r.s.bookings[booking.ID] = *booking

	return booking, nil
}

// LockRoom ничего не делает: в памяти проверку и запись комнаты сериализует вызывающая сторона
func (r *BookingRepository) LockRoom(_ context.Context, _ domain.RoomID) error {
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id domain.BookingID) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &booking, nil
}

func (r *BookingRepository) DayBookings(_ context.Context, roomID domain.RoomID, dayStart, dayEnd time.Time) ([]*domain.Booking, error) {
	result := r.filter(func(b domain.Booking) bool {
		return b.RoomID == roomID && b.HoldsSlot() &&
			!b.Start.Before(dayStart) && b.Start.Before(dayEnd)
	})
	sortAscending(result)
	return result, nil
}

func (r *BookingRepository) OverlappingBookings(_ context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.Booking, error) {
	result := r.filter(func(b domain.Booking) bool {
		return b.RoomID == roomID && b.HoldsSlot() && timeutil.Overlaps(b.Start, b.End, start, end)
	})
	sortAscending(result)
	return result, nil
}

func (r *BookingRepository) GetByUserID(_ context.Context, userID domain.UserID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := r.filter(func(b domain.Booking) bool {
		return b.UserID == userID && (status == nil || b.Status == *status)
	})
	sortDescending(result)
	return result, nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := r.filter(func(b domain.Booking) bool {
		switch {
		case filter.RoomID != nil && b.RoomID != *filter.RoomID:
			return false
		case filter.UserID != nil && b.UserID != *filter.UserID:
			return false
		case filter.From != nil && b.Start.Before(*filter.From):
			return false
		case filter.To != nil && !b.Start.Before(*filter.To):
			return false
		case filter.Status != nil && b.Status != *filter.Status:
			return false
		}
		return true
	})
	sortDescending(result)
	return result, nil
}

func (r *BookingRepository) Cancel(_ context.Context, id domain.BookingID, cancelledAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok || !booking.CanBeCancelled() {
		return bookingRepo.ErrCannotCancel
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &cancelledAt
	booking.UpdatedAt = cancelledAt
	r.s.bookings[id] = booking

	return nil
}

func (r *BookingRepository) CompleteEnded(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var completed int64
	for id, booking := range r.s.bookings {
		if booking.IsActive() && booking.HasEnded(now) {
			booking.Status = domain.StatusCompleted
			booking.UpdatedAt = now
			r.s.bookings[id] = booking
			completed++
		}
	}

	return completed, nil
}

func (r *BookingRepository) Delete(_ context.Context, id domain.BookingID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.s.bookings, id)

	return nil
}

func (r *BookingRepository) filter(keep func(b domain.Booking) bool) []*domain.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range r.s.bookings {
		if keep(booking) {
			booking := booking
			result = append(result, &booking)
		}
	}
	return result
}

func sortAscending(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].Start.Before(bookings[j].Start)
		}
		return bookings[i].ID < bookings[j].ID
	})
}

func sortDescending(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].Start.After(bookings[j].Start)
		}
		return bookings[i].ID < bookings[j].ID
	})
}
