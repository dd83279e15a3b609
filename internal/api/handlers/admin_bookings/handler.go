package admin_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

// Handler административные операции с бронированиями
type Handler struct {
	service  BookingService
	calendar Calendar
	logger   Logger
}

func NewHandler(service BookingService, calendar Calendar, logger Logger) *Handler {
	return &Handler{
		service:  service,
		calendar: calendar,
		logger:   logger,
	}
}

// List GET /api/v1/admin/bookings
// Query params: roomId, userId, status, from, to (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	serviceReq, err := ToServiceRequest(h.calendar, q.Get("roomId"), q.Get("userId"), q.Get("status"), q.Get("from"), q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

// Delete DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bookingID := domain.BookingID(mux.Vars(r)["bookingId"])
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/bookings/{id} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
