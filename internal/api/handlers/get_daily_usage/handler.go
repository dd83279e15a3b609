package get_daily_usage

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	getDailyUsage "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/get_daily_usage"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgMissingUserID = "отсутствует ID пользователя"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden     = "доступ запрещен"
	msgRoomNotFound  = "комната не найдена"
)

type Handler struct {
	useCase    GetDailyUsageUseCase
	dateParser DateParser
	logger     Logger
}

func NewHandler(useCase GetDailyUsageUseCase, dateParser DateParser, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dateParser: dateParser,
		logger:     logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/usage
// Query params: date (required, YYYY-MM-DD), userId (optional, по умолчанию текущий пользователь)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := domain.RoomID(mux.Vars(r)["roomId"])
	if roomID == "" {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	userID := callerID
	if v := r.URL.Query().Get("userId"); v != "" {
		userID = domain.UserID(v)
	}
	if userID != callerID && role != domain.RoleAdmin {
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := h.dateParser.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/usage - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	usage, err := h.useCase.Execute(r.Context(), &getDailyUsage.Request{UserID: userID, RoomID: roomID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getDailyUsage.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getDailyUsage.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /rooms/{id}/usage - Failed to get usage: room_id=%s, user_id=%s, error=%v", roomID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainUsage(usage))
}
