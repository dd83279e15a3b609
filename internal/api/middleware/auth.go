package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// Заголовки с личностью пользователя, их выставляет шлюз перед сервисом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
	msgAdminOnly     = "операция доступна только администратору"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// Auth извлекает пользователя из заголовков и кладет его в контекст
// Без роли пользователь считается клиентом
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if userID == "" {
				logger.Warn("Auth: %s %s - missing %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
			if role == "" {
				role = domain.RoleClient
			}
			if !role.IsValid() {
				logger.Warn("Auth: %s %s - invalid role %q for user=%s", r.Method, r.URL.Path, role, userID)
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}

			ctx := WithUser(r.Context(), domain.UserID(userID), role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только администраторов, ставится после Auth
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok || role != domain.RoleAdmin {
				userID, _ := GetUserID(r.Context())
				logger.Warn("RequireAdmin: %s %s - access denied for user=%s", r.Method, r.URL.Path, userID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser возвращает контекст с пользователем
func WithUser(ctx context.Context, userID domain.UserID, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (domain.UserID, bool) {
	userID, ok := ctx.Value(userIDKey).(domain.UserID)
	return userID, ok
}

// GetUserRole извлекает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}
