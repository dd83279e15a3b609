package admin_users

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/users"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUser        = "некорректные данные пользователя"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgUsernameTaken      = "имя пользователя уже занято"
	msgNotFound           = "пользователь не найден"
)

// Handler административное управление пользователями
type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /admin/users - Invalid user: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUser)

		case errors.Is(err, users.ErrUsernameTaken):
			h.logger.Warn("POST /admin/users - Username taken: username=%s", req.Username)
			handlers.RespondConflict(w, msgUsernameTaken)

		default:
			h.logger.Error("POST /admin/users - Failed to create user: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/users - User created: user_id=%s", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, user)
}

// List GET /api/v1/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Users)
}

// Delete DELETE /api/v1/admin/users/{userId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := domain.UserID(mux.Vars(r)["userId"])
	if userID == "" {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/users/{id} - Failed to delete user: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
