//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayledger/internal/pkg/config"
	testhttp "stayledger/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != nil {
			c.Set(ctxUserIDKey, *userID)
		}
		c.Next()
	})
	r.Use(rl.Limit())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	// a negligible refill rate keeps the test independent of wall time
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 3})
	r := newLimitedRouter(rl, nil)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)
	}
	testhttp.AssertRetryAfter(t, hit(r, "10.0.0.1:1234"), http.StatusTooManyRequests, "1")

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.2:1234").Code)
}

func TestRateLimiter_KeysByUser(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 1})
	alice, bob := uuid.New(), uuid.New()

	assert.Equal(t, http.StatusOK, hit(newLimitedRouter(rl, &alice), "10.0.0.1:1").Code)
	// same IP, different user
	assert.Equal(t, http.StatusOK, hit(newLimitedRouter(rl, &bob), "10.0.0.1:1").Code)
	// same user, different IP
	assert.Equal(t, http.StatusTooManyRequests, hit(newLimitedRouter(rl, &alice), "10.0.0.9:1").Code)
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("ip:a")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("ip:b")
	assert.Len(t, rl.visitors, 2)

	now = now.Add(visitorTTL + time.Second)
	rl.getLimiter("ip:c")
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "ip:c")
}
