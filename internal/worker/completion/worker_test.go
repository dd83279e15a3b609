package completion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestRunOnce_CompletesEndedBookings(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for _, b := range []*domain.Booking{
		{ID: "b1", UserID: "u1", RoomID: "r1", Start: at(9, 0), End: at(9, 40), DurationMinutes: 40, Status: domain.StatusActive},
		{ID: "b2", UserID: "u1", RoomID: "r1", Start: at(10, 0), End: at(10, 30), DurationMinutes: 30, Status: domain.StatusActive},
		{ID: "b3", UserID: "u2", RoomID: "r1", Start: at(11, 0), End: at(11, 30), DurationMinutes: 30, Status: domain.StatusActive},
	} {
		_, err := store.Bookings().Create(ctx, b)
		require.NoError(t, err)
	}

	w := NewWorker(store.Bookings(), time.Minute, logger.NewDiscard())
	w.timeProvider = fixedClock{now: at(10, 30)}

	assert.Equal(t, int64(2), w.RunOnce(ctx), "end equal to now counts as ended")

	b3, err := store.Bookings().GetByID(ctx, "b3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, b3.Status)

	b1, err := store.Bookings().GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, b1.Status)
	assert.True(t, b1.HoldsSlot())

	assert.Equal(t, int64(0), w.RunOnce(ctx))
}

type failingRepo struct{ calls atomic.Int32 }

func (r *failingRepo) CompleteEnded(_ context.Context, _ time.Time) (int64, error) {
	r.calls.Add(1)
	return 0, errors.New("connection refused")
}

func TestRun_KeepsGoingAfterErrorsAndStopsOnCancel(t *testing.T) {
	repo := &failingRepo{}
	w := NewWorker(repo, 5*time.Millisecond, logger.NewDiscard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return repo.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
