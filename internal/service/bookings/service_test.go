package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, time.UTC)
}

var (
	owner = models.Requester{UserID: "u1", Role: domain.RoleClient}
	other = models.Requester{UserID: "u2", Role: domain.RoleClient}
	admin = models.Requester{UserID: "a1", Role: domain.RoleAdmin}
)

func newService(t *testing.T, now time.Time) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()
	seed := []*domain.Booking{
		{ID: "b1", UserID: "u1", RoomID: "r1", Start: at(1, 14, 0), End: at(1, 14, 30), DurationMinutes: 30, Status: domain.StatusActive, CreatedAt: at(1, 8, 0)},
		{ID: "b2", UserID: "u1", RoomID: "r2", Start: at(2, 10, 0), End: at(2, 11, 0), DurationMinutes: 60, Status: domain.StatusActive, CreatedAt: at(1, 8, 0)},
		{ID: "b3", UserID: "u2", RoomID: "r1", Start: at(1, 9, 0), End: at(1, 9, 30), DurationMinutes: 30, Status: domain.StatusCompleted, CreatedAt: at(1, 8, 0)},
	}
	for _, b := range seed {
		_, err := store.Bookings().Create(ctx, b)
		require.NoError(t, err)
	}

	svc := NewService(store.Bookings(), 2*time.Hour, logger.NewDiscard())
	svc.timeProvider = fixedClock{now: now}
	return svc, store
}

func TestGetByID_Access(t *testing.T) {
	svc, _ := newService(t, at(1, 8, 0))
	ctx := context.Background()

	got, err := svc.GetByID(ctx, "b1", owner)
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID)

	_, err = svc.GetByID(ctx, "b1", other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, "b1", admin)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "missing", admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	svc, _ := newService(t, at(1, 8, 0))
	ctx := context.Background()

	list, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Requester: owner, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list.Bookings, 2)
	assert.Equal(t, "b2", list.Bookings[0].ID, "newest first")

	status := "completed"
	list, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Requester: admin, UserID: "u2", Status: &status})
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 1)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Requester: other, UserID: "u1"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	bad := "pending"
	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Requester: owner, UserID: "u1", Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_Filter(t *testing.T) {
	svc, _ := newService(t, at(1, 8, 0))
	ctx := context.Background()

	room := "r1"
	list, err := svc.List(ctx, &models.ListBookingsRequest{RoomID: &room})
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 2)

	from, to := at(2, 0, 0), at(3, 0, 0)
	list, err = svc.List(ctx, &models.ListBookingsRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, "b2", list.Bookings[0].ID)

	_, err = svc.List(ctx, &models.ListBookingsRequest{From: &to, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_OwnerNoticeWindow(t *testing.T) {
	// b1 начинается в 14:00, минимальный запас 2 часа
	svc, store := newService(t, at(1, 12, 1))
	ctx := context.Background()

	_, err := svc.Cancel(ctx, "b1", owner)
	assert.ErrorIs(t, err, ErrCancelTooLate)

	svc.timeProvider = fixedClock{now: at(1, 12, 0)}
	got, err := svc.Cancel(ctx, "b1", owner)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancelledAt)

	stored, err := store.Bookings().GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	_, err = svc.Cancel(ctx, "b1", owner)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AdminBypassesNotice(t *testing.T) {
	svc, _ := newService(t, at(1, 13, 59))
	ctx := context.Background()

	_, err := svc.Cancel(ctx, "b1", other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Cancel(ctx, "b1", admin)
	assert.NoError(t, err)

	_, err = svc.Cancel(ctx, "b3", admin)
	assert.ErrorIs(t, err, ErrCannotCancel, "completed bookings stay completed")
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t, at(1, 8, 0))
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "b3"))
	assert.ErrorIs(t, svc.Delete(ctx, "b3"), ErrBookingNotFound)
}
