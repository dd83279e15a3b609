package get_user_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()

	store := memory.NewStore()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		id     domain.BookingID
		hour   int
		status domain.BookingStatus
	}{
		{"b1", 9, domain.StatusCompleted},
		{"b2", 11, domain.StatusActive},
		{"b3", 13, domain.StatusCancelled},
	}
	for _, b := range seed {
		start := day.Add(time.Duration(b.hour) * time.Hour)
		_, err := store.Bookings().Create(context.Background(), &domain.Booking{
			ID:              b.id,
			UserID:          "u1",
			Username:        "client1",
			RoomID:          "r1",
			RoomName:        "Conference Room A",
			Start:           start,
			End:             start.Add(30 * time.Minute),
			DurationMinutes: 30,
			Status:          b.status,
		})
		require.NoError(t, err)
	}

	log := logger.NewDiscard()
	return NewHandler(bookings.NewService(store.Bookings(), 2*time.Hour, log), log)
}

func list(h *Handler, userID string, query string, callerID domain.UserID, role domain.Role) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/bookings"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID})
	if callerID != "" {
		req = req.WithContext(middleware.WithUser(req.Context(), callerID, role))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) []models.BookingResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_History(t *testing.T) {
	h := newHandler(t)

	all := decode(t, list(h, "u1", "", "u1", domain.RoleClient))
	require.Len(t, all, 3)
	// новые первыми
	assert.Equal(t, "b3", all[0].ID)
	assert.Equal(t, "b1", all[2].ID)

	active := decode(t, list(h, "u1", "?status=active", "u1", domain.RoleClient))
	require.Len(t, active, 1)
	assert.Equal(t, "b2", active[0].ID)

	assert.Len(t, decode(t, list(h, "u1", "", "a1", domain.RoleAdmin)), 3)
	assert.Empty(t, decode(t, list(h, "u2", "", "u2", domain.RoleClient)))
}

func TestHandle_StatusCodes(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name       string
		userID     string
		query      string
		callerID   domain.UserID
		role       domain.Role
		wantStatus int
	}{
		{"unknown status", "u1", "?status=pending", "u1", domain.RoleClient, http.StatusBadRequest},
		{"someone else's history", "u1", "", "u2", domain.RoleClient, http.StatusForbidden},
		{"missing user id", "", "", "u1", domain.RoleClient, http.StatusBadRequest},
		{"missing caller", "u1", "", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := list(h, tt.userID, tt.query, tt.callerID, tt.role)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

type failingService struct{}

func (failingService) GetUserBookings(context.Context, *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	return nil, fmt.Errorf("%w: GetUserBookings - repository error: connection refused", bookings.ErrInternal)
}

func TestHandle_ServiceFailure(t *testing.T) {
	h := NewHandler(failingService{}, logger.NewDiscard())

	rec := list(h, "u1", "", "u1", domain.RoleClient)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
