package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	roomsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
	getAvailableSlots "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

func newHandler(t *testing.T, day time.Time) *Handler {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()
	_, err := store.Rooms().Create(ctx, &domain.Room{ID: "r1", Name: "Conference Room A"})
	require.NoError(t, err)

	at := func(hour, minute int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
	}

	_, err = store.Bookings().Create(ctx, &domain.Booking{
		ID:              "b1",
		UserID:          "u1",
		Username:        "client1",
		RoomID:          "r1",
		RoomName:        "Conference Room A",
		Start:           at(9, 0),
		End:             at(9, 30),
		DurationMinutes: 30,
		Status:          domain.StatusActive,
		CreatedAt:       time.Now(),
	})
	require.NoError(t, err)

	_, err = store.BlockedSlots().Create(ctx, &domain.BlockedSlot{
		ID:       "s1",
		RoomID:   "r1",
		RoomName: "Conference Room A",
		Start:    at(12, 0),
		End:      at(13, 0),
		Reason:   "Maintenance",
	})
	require.NoError(t, err)

	log := logger.NewDiscard()
	calendar := timeutil.NewCalendarIn(time.UTC)
	uc := getAvailableSlots.NewUseCase(
		roomsService.NewService(store.Rooms(), 0, log),
		store.Bookings(),
		store.BlockedSlots(),
		calendar,
		getAvailableSlots.Options{DayStartHour: 9, DayEndHour: 21, SlotStepMinutes: 15},
		log,
	)

	return NewHandler(uc, calendar, log)
}

func get(h *Handler, roomID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+roomID+"/available-slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"roomId": roomID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Grid(t *testing.T) {
	day := time.Now().UTC().AddDate(0, 0, 7)
	h := newHandler(t, day)

	rec := get(h, "r1", "date="+day.Format(domain.DateFormat))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Conference Room A", resp.RoomName)
	require.Len(t, resp.Slots, 48)

	assert.Equal(t, "09:00", resp.Slots[0].Label)
	assert.False(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)

	// 12:00-13:00 заблокировано
	for i := 12; i < 16; i++ {
		assert.False(t, resp.Slots[i].Available, resp.Slots[i].Label)
		assert.True(t, resp.Slots[i].Blocked, resp.Slots[i].Label)
	}
	assert.True(t, resp.Slots[16].Available)
	assert.Equal(t, "20:45", resp.Slots[47].Label)
}

func TestHandle_BadRequests(t *testing.T) {
	h := newHandler(t, time.Now().UTC().AddDate(0, 0, 7))

	assert.Equal(t, http.StatusBadRequest, get(h, "r1", "").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "r1", "date=tomorrow").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "r9", "date=2030-01-01").Code)
}
