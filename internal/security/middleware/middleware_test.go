package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/security/ratelimit"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestValidateJSONContentType(t *testing.T) {
	h := ValidateJSONContentType(slog.Default())(ok)

	cases := []struct {
		method, contentType, body string
		want                      int
	}{
		{http.MethodPost, "application/json", `{}`, http.StatusOK},
		{http.MethodPost, "application/json; charset=utf-8", `{}`, http.StatusOK},
		{http.MethodPut, "text/plain", `{}`, http.StatusUnsupportedMediaType},
		{http.MethodPost, "", `{}`, http.StatusUnsupportedMediaType},
		{http.MethodPost, "text/plain", ``, http.StatusOK},
		{http.MethodGet, "text/plain", ``, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/task", strings.NewReader(tc.body))
		if tc.contentType != "" {
			req.Header.Set("Content-Type", tc.contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %q: expected %d, got %d", tc.method, tc.contentType, tc.want, rec.Code)
		}
		if rec.Code == http.StatusUnsupportedMediaType && !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Fatalf("expected error envelope, got %s", rec.Body.String())
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(ok)

	req := httptest.NewRequest(http.MethodOptions, "/task", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected origin echoed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "PUT") {
		t.Fatalf("expected PUT in allowed methods")
	}

	req = httptest.NewRequest(http.MethodGet, "/task", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected unknown origin to be refused")
	}
}

func TestRateLimitSkipsOperationalPaths(t *testing.T) {
	limiter := ratelimit.NewLimiter(1, time.Minute)
	defer limiter.Stop()
	h := RateLimit(limiter, slog.Default())(ok)

	call := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.1:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := call("/task"); got != http.StatusOK {
		t.Fatalf("expected first call to pass, got %d", got)
	}
	if got := call("/task"); got != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", got)
	}
	if got := call("/healthz"); got != http.StatusOK {
		t.Fatalf("expected health checks to bypass the limiter, got %d", got)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(slog.Default())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/task", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRequestLoggerPropagatesID(t *testing.T) {
	var seen string
	h := RequestLogger(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/task", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected request id to propagate, got %q", seen)
	}
}

func TestTimeoutBoundsContext(t *testing.T) {
	var deadline bool
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/task", nil))
	if !deadline {
		t.Fatalf("expected API request to carry a deadline")
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws/events", nil).WithContext(context.Background()))
	if deadline {
		t.Fatalf("expected websocket request to carry no deadline")
	}
}
