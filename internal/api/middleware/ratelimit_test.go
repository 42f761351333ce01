package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/invitations/validate", nil)
		req.RemoteAddr = remote
		if userID != "" {
			req.Header.Set(HeaderUserID, userID)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, send("", "10.0.0.1:5678").Code)

	rec := send("", "10.0.0.1:9999")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	// Другой клиент не затронут
	assert.Equal(t, http.StatusOK, send("", "10.0.0.2:1234").Code)
	assert.Equal(t, http.StatusOK, send("5", "10.0.0.1:1234").Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 1)
	rl.now = func() time.Time { return now }

	rl.getLimiter("ip:10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("ip:10.0.0.2")

	now = now.Add(6 * time.Minute)
	rl.cleanup()

	assert.NotContains(t, rl.visitors, "ip:10.0.0.1")
	assert.Contains(t, rl.visitors, "ip:10.0.0.2")
}
