//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertRetryAfter checks a throttled or transient response tells the client
// when to come back.
func AssertRetryAfter(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, seconds string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response: %s", w.Body.String())
	assert.Equal(t, seconds, w.Header().Get("Retry-After"), "Retry-After mismatch")
}
