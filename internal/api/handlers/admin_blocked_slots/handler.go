package admin_blocked_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/blockedslots"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/blockedslots/models"
	createBlockedSlot "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_blocked_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, время ожидается в формате RFC 3339"
	msgInvalidInput       = "некорректные данные блокировки"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
	msgRoomNotFound       = "комната не найдена"
	msgConflict           = "в выбранном интервале уже есть бронирования"
	msgInvalidID          = "некорректный ID блокировки"
	msgNotFound           = "блокировка не найдена"
)

// Handler административное управление блокировками комнат
type Handler struct {
	useCase CreateBlockedSlotUseCase
	service BlockedSlotService
	logger  Logger
}

func NewHandler(useCase CreateBlockedSlotUseCase, service BlockedSlotService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/blocked-slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBlockedSlot.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBlockedSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBlockedSlot.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBlockedSlot.ErrConflictsWithBookings):
			h.logger.Warn("POST /admin/blocked-slots - Overlaps bookings: room_id=%s", req.RoomID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /admin/blocked-slots - Failed to create blocked slot: room_id=%s, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-slots - Blocked slot created: id=%s, room_id=%s", slot.ID, slot.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBlockedSlot(slot))
}

// List GET /api/v1/admin/blocked-slots
// Query params: roomId (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var roomID *domain.RoomID
	if v := r.URL.Query().Get("roomId"); v != "" {
		id := domain.RoomID(v)
		roomID = &id
	}

	result, err := h.service.List(r.Context(), roomID)
	if err != nil {
		h.logger.Error("GET /admin/blocked-slots - Failed to list blocked slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.BlockedSlots)
}

// Delete DELETE /api/v1/admin/blocked-slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID := domain.BlockedSlotID(mux.Vars(r)["slotId"])
	if slotID == "" {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID); err != nil {
		if errors.Is(err, blockedslots.ErrBlockedSlotNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blocked-slots/{id} - Failed to delete blocked slot: id=%s, error=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blocked-slots/{id} - Blocked slot deleted: id=%s", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
