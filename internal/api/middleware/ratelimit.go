package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CoworkingBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// UserRateLimiter хранит token bucket на каждого пользователя
// Bucket неактивного дольше idleTTL пользователя вытесняется из кэша
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	r        rate.Limit
	b        int
}

// NewUserRateLimiter создает ограничитель с частотой r запросов в секунду и запасом b
func NewUserRateLimiter(r rate.Limit, b int, idleTTL time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters: cache.New(idleTTL, 2*idleTTL),
		r:        r,
		b:        b,
	}
}

// Allow расходует один токен пользователя и продлевает жизнь его bucket
func (l *UserRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	var limiter *rate.Limiter
	if cached, ok := l.limiters.Get(key); ok {
		limiter = cached.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.r, l.b)
	}
	l.limiters.SetDefault(key, limiter)
	l.mu.Unlock()

	return limiter.Allow()
}

// RateLimit ограничивает частоту запросов пользователя, ставится после Auth
// Без пользователя в контексте ключом служит адрес клиента
func RateLimit(limiter *UserRateLimiter, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if userID, ok := GetUserID(r.Context()); ok {
				key = userID.String()
			}

			if !limiter.Allow(key) {
				logger.Warn("RateLimit: %s %s - limit exceeded for %s", r.Method, r.URL.Path, key)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
