package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"

	tests := []struct {
		name           string
		method         string
		path           string
		providedKey    string
		expectedStatus int
	}{
		{"valid key", http.MethodPost, "/api/v1/action/stop", apiKey, http.StatusOK},
		{"wrong key", http.MethodPost, "/api/v1/action/stop", "wrong-key", http.StatusUnauthorized},
		{"missing key", http.MethodPut, "/api/v1/settings", "", http.StatusUnauthorized},
		{"delete needs key", http.MethodDelete, "/api/v1/groups/Hobbies", "", http.StatusUnauthorized},
		{"reads are open", http.MethodGet, "/api/v1/state", "", http.StatusOK},
		{"public probe", http.MethodGet, "/healthz", "", http.StatusOK},
		{"public metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())(okHandler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_EmptyKeyDisablesCheck(t *testing.T) {
	h := AuthMiddleware("", nil, NewSuspiciousActivityDetector())(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reset", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := AuthMiddleware("k", nil, detector)(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reset", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3, detector.FailedAuthCount("10.0.0.9"))
	assert.Zero(t, detector.FailedAuthCount("10.0.0.10"))
}

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	detector.limit = 10
	h := RateLimitMiddleware(nil, detector)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.RemoteAddr = "192.168.1.100:1234"

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_WindowResets(t *testing.T) {
	now := time.Now()
	detector := NewSuspiciousActivityDetector()
	detector.limit = 1
	detector.now = func() time.Time { return now }

	assert.True(t, detector.RecordRequest("1.1.1.1"))
	assert.False(t, detector.RecordRequest("1.1.1.1"))

	now = now.Add(RateWindow + time.Second)
	assert.True(t, detector.RecordRequest("1.1.1.1"))
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "1.2.3.4:80", "", nil, "1.2.3.4"},
		{"untrusted forwarded ignored", "1.2.3.4:80", "9.9.9.9", nil, "1.2.3.4"},
		{"trusted proxy last hop", "10.0.0.1:80", "9.9.9.9, 8.8.8.8", []string{"10.0.0.1"}, "8.8.8.8"},
		{"unparseable remote", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
