package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/metrics"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := GetUserID(r.Context())
		role, _ := GetUserRole(r.Context())
		w.Header().Set("X-Seen-User", userID.String())
		w.Header().Set("X-Seen-Role", string(role))
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	h := Auth(logger.NewDiscard())(echoUser())

	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantRole   string
	}{
		{"missing user", "", "", http.StatusUnauthorized, ""},
		{"default role", "u1", "", http.StatusNoContent, "client"},
		{"admin", "a1", "Admin", http.StatusNoContent, "admin"},
		{"unknown role", "u1", "root", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRole, rec.Header().Get("X-Seen-Role"))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	log := logger.NewDiscard()
	h := Auth(log)(RequireAdmin(log)(echoUser()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set(HeaderUserID, "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set(HeaderUserRole, string(domain.RoleAdmin))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimit_PerUser(t *testing.T) {
	log := logger.NewDiscard()
	limiter := NewUserRateLimiter(0.001, 2, time.Minute)
	h := Auth(log)(RateLimit(limiter, log)(echoUser()))

	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(HeaderUserID, userID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("u1"))
	assert.Equal(t, http.StatusNoContent, call("u1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u1"))
	assert.Equal(t, http.StatusNoContent, call("u2"), "buckets are per user")
}

func TestUserRateLimiter_IdleBucketIsEvicted(t *testing.T) {
	limiter := NewUserRateLimiter(0.001, 1, 50*time.Millisecond)

	assert.True(t, limiter.Allow("u1"))
	assert.False(t, limiter.Allow("u1"))

	time.Sleep(120 * time.Millisecond)

	assert.True(t, limiter.Allow("u1"), "idle bucket must be dropped and recreated")
	assert.False(t, limiter.Allow("u1"))
}

func TestUserRateLimiter_ActiveBucketIsKept(t *testing.T) {
	limiter := NewUserRateLimiter(0.001, 1, 200*time.Millisecond)

	assert.True(t, limiter.Allow("u1"))
	for i := 0; i < 3; i++ {
		time.Sleep(100 * time.Millisecond)
		assert.False(t, limiter.Allow("u1"), "each call refreshes the idle ttl")
	}
}

func TestMetrics_RouteTemplate(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/rooms/{roomId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rooms/r1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rooms/r2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/rooms/{roomId}", "404")))
}
