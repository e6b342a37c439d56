package stub

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/laundromat-id/adminctl/internal/pkg/telemetry"
)

func TestRequestIDReachesLogContext(t *testing.T) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = telemetry.RequestIDFromContext(r.Context())
	})
	h := middleware.RequestID(requestIDContext(inner))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, got, "chi request id must reach the log context")
}
