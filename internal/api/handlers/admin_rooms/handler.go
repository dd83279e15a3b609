package admin_rooms

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRoom        = "некорректные данные комнаты"
	msgNotFound           = "комната не найдена"
)

// Handler административное управление комнатами
type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/rooms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/rooms", "", err)
		return
	}

	h.logger.Info("POST /admin/rooms - Room created: room_id=%s", room.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainRoom(room))
}

// Update PUT /api/v1/admin/rooms/{roomId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	roomID := domain.RoomID(mux.Vars(r)["roomId"])
	if roomID == "" {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req models.RoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Update(r.Context(), roomID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("PUT /admin/rooms/{id} - Room updated: room_id=%s", roomID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRoom(room))
}

// Delete DELETE /api/v1/admin/rooms/{roomId}
// Бронирования и блокировки комнаты не удаляются
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID := domain.RoomID(mux.Vars(r)["roomId"])
	if roomID == "" {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	if err := h.service.Delete(r.Context(), roomID); err != nil {
		h.respondServiceError(w, "DELETE /admin/rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("DELETE /admin/rooms/{id} - Room deleted: room_id=%s", roomID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, roomID domain.RoomID, err error) {
	switch {
	case errors.Is(err, rooms.ErrInvalidInput):
		h.logger.Warn("%s - Invalid room: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRoom)

	case errors.Is(err, rooms.ErrRoomNotFound):
		h.logger.Warn("%s - Room not found: room_id=%s", route, roomID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed: room_id=%s, error=%v", route, roomID, err)
		handlers.RespondInternalError(w)
	}
}
