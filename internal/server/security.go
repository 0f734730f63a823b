package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// AuthMiddleware requires the API key on requests that change state.
// Reads and public paths pass through, and an empty key disables the check.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || isReadOnly(r.Method) || isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func isPublic(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipCounters is one client's tally inside the current window
type ipCounters struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector tallies requests and failed logins per IP.
// All tallies reset together when the window elapses.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	byIP        map[string]*ipCounters
	windowStart time.Time
	limit       int
	window      time.Duration
	now         func() time.Time
}

// NewSuspiciousActivityDetector uses RateLimitPerWindow over RateWindow
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		byIP:        make(map[string]*ipCounters),
		windowStart: time.Now(),
		limit:       RateLimitPerWindow,
		window:      RateWindow,
		now:         time.Now,
	}
}

// counters returns ip's tally, rolling the window first. Caller holds mu.
func (s *SuspiciousActivityDetector) counters(ip string) *ipCounters {
	if now := s.now(); now.Sub(s.windowStart) > s.window {
		clear(s.byIP)
		s.windowStart = now
	}
	c, ok := s.byIP[ip]
	if !ok {
		c = &ipCounters{}
		s.byIP[ip] = c
	}
	return c
}

// RecordFailedAuth counts a rejected API key and alerts past FailedAuthAlertAt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.counters(ip)
	c.failedAuth++
	if c.failedAuth >= FailedAuthAlertAt {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", c.failedAuth)
	}
}

// RecordRequest counts a request and reports whether ip is still within the limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.counters(ip)
	c.requests++
	over := c.requests - s.limit
	if over <= 0 {
		return true
	}
	if over%100 == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", c.requests)
	}
	return false
}

// FailedAuthCount reports ip's failed logins in the current window
func (s *SuspiciousActivityDetector) FailedAuthCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.byIP[ip]; ok {
		return c.failedAuth
	}
	return 0
}

// RateLimitMiddleware rejects clients over the per-window request limit
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is only believed
// when the direct peer is a trusted proxy, and then its last hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
