package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomsService "github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms"
	usersService "github.com/m04kA/SMC-CoworkingBooking/internal/service/users"
	createBooking "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, время ожидается в формате RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "нельзя бронировать от имени другого пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidInput       = "не указаны обязательные поля бронирования"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
	msgDurationExceeded   = "превышена максимальная длительность бронирования"
	msgQuotaExceeded      = "превышена дневная квота бронирования этой комнаты"
	msgSlotUnavailable    = "выбранный интервал недоступен"
	msgStorageUnavailable = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	rooms   RoomProvider
	users   UserProvider
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, rooms RoomProvider, users UserProvider, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		rooms:   rooms,
		users:   users,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	// Без userId в теле бронирование оформляется на вызывающего
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = callerID.String()
	}
	if domain.UserID(req.UserID) != callerID && role != domain.RoleAdmin {
		h.logger.Warn("POST /bookings - User %s tried to book for user %s", callerID, req.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if strings.TrimSpace(req.RoomID) == "" {
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	room, err := h.rooms.Get(r.Context(), domain.RoomID(req.RoomID))
	if err != nil {
		if errors.Is(err, roomsService.ErrRoomNotFound) {
			h.logger.Warn("POST /bookings - Room not found: room_id=%s", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)
			return
		}
		h.logger.Error("POST /bookings - Failed to get room: room_id=%s, error=%v", req.RoomID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		user, err := h.users.Get(r.Context(), domain.UserID(req.UserID))
		if err != nil {
			if errors.Is(err, usersService.ErrUserNotFound) {
				h.logger.Warn("POST /bookings - User not found: user_id=%s", req.UserID)
				handlers.RespondNotFound(w, msgUserNotFound)
				return
			}
			h.logger.Error("POST /bookings - Failed to get user: user_id=%s, error=%v", req.UserID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)
			return
		}
		username = user.Username
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(room, username))
	if err != nil {
		var quotaErr *createBooking.QuotaExceededError

		switch {
		case errors.As(err, &quotaErr):
			h.logger.Warn("POST /bookings - Quota exceeded: user_id=%s, room_id=%s, remaining=%d",
				req.UserID, req.RoomID, quotaErr.Remaining)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, QuotaExceededResponse{
				Error:            msgQuotaExceeded,
				RemainingMinutes: quotaErr.Remaining,
			})

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%s, room_id=%s", req.UserID, req.RoomID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrDurationExceeded):
			handlers.RespondBadRequest(w, msgDurationExceeded)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: user_id=%s, room_id=%s, error=%v",
				req.UserID, req.RoomID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, room_id=%s, error=%v",
				req.UserID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, room_id=%s",
		result.ID, req.UserID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
