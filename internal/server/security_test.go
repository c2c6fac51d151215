package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityLoggingMiddleware_RecordsFailedAuth(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	// Downstream handler rejects the request as unauthenticated
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	ip := "192.168.1.50"
	req := httptest.NewRequest("GET", "/api/v1/tasks", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	}

	detector.mu.Lock()
	count := detector.failedAuthByIP[ip]
	detector.mu.Unlock()

	if count != 3 {
		t.Errorf("expected 3 recorded failures, got %d", count)
	}
}

func TestSecurityLoggingMiddleware_IgnoresSuccessfulRequests(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.51"
	req := httptest.NewRequest("GET", "/api/v1/tasks", nil)
	req.RemoteAddr = ip + ":1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	detector.mu.Lock()
	count := detector.failedAuthByIP[ip]
	detector.mu.Unlock()

	if count != 0 {
		t.Errorf("expected no recorded failures, got %d", count)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwardedFor   string
		trustedProxies []string
		expected       string
	}{
		{
			name:       "Direct connection",
			remoteAddr: "203.0.113.7:4321",
			expected:   "203.0.113.7",
		},
		{
			name:           "Forwarded header from untrusted source is ignored",
			remoteAddr:     "203.0.113.7:4321",
			forwardedFor:   "198.51.100.9",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "203.0.113.7",
		},
		{
			name:           "Forwarded header from trusted proxy is honored",
			remoteAddr:     "10.0.0.1:4321",
			forwardedFor:   "198.51.100.9",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "198.51.100.9",
		},
		{
			name:           "Rightmost forwarded entry wins",
			remoteAddr:     "10.0.0.1:4321",
			forwardedFor:   "198.51.100.9, 198.51.100.10",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "198.51.100.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwardedFor)
			}

			if got := extractIP(req, tt.trustedProxies); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
