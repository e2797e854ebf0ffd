package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLocalOnlyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	wrapped := LocalOnlyMiddleware(ok)

	tests := []struct {
		name   string
		remote string
		host   string
		want   int
	}{
		{"ipv4", "127.0.0.1:51000", "127.0.0.1:18920", http.StatusOK},
		{"ipv6", "[::1]:51000", "[::1]:18920", http.StatusOK},
		{"no port", "127.0.0.1", "localhost", http.StatusOK},
		{"localhost name", "127.0.0.1:51000", "LocalHost:18920", http.StatusOK},
		{"lan client", "192.168.1.20:51000", "127.0.0.1:18920", http.StatusForbidden},
		{"bad remote", "garbage", "127.0.0.1:18920", http.StatusForbidden},
		{"rebound name", "127.0.0.1:51000", "evil.example:18920", http.StatusForbidden},
		{"lan host", "127.0.0.1:51000", "192.168.1.20:18920", http.StatusForbidden},
		{"empty host", "127.0.0.1:51000", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Host = tt.host
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCrossOriginMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	wrapped := CrossOriginMiddleware(ok)

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{"same-origin post", http.MethodPost, map[string]string{"Sec-Fetch-Site": "same-origin"}, http.StatusOK},
		{"cross-site post", http.MethodPost, map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example"}, http.StatusForbidden},
		{"foreign origin without fetch metadata", http.MethodPost, map[string]string{"Origin": "https://evil.example"}, http.StatusForbidden},
		{"matching origin", http.MethodPost, map[string]string{"Origin": "http://127.0.0.1:18920"}, http.StatusOK},
		{"cross-site get", http.MethodGet, map[string]string{"Sec-Fetch-Site": "cross-site"}, http.StatusOK},
		{"plain client post", http.MethodPost, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/coffee", nil)
			req.Host = "127.0.0.1:18920"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "form-action 'self'") {
		t.Errorf("Content-Security-Policy = %q", csp)
	}
}

func TestLimitBodyMiddleware(t *testing.T) {
	var readErr error
	handler := LimitBodyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	body := strings.NewReader(strings.Repeat("a", MaxFormBodySize+1))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/coffee", body))

	if readErr == nil {
		t.Error("oversized body should fail to read")
	}
}
