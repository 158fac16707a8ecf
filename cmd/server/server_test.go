package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/events"
	"github.com/aryan0dhankhar/workforce/internal/handler"
	"github.com/aryan0dhankhar/workforce/internal/security/ratelimit"
	"github.com/aryan0dhankhar/workforce/pkg/config"
)

type testServer struct {
	*httptest.Server
	hub *events.Hub
}

// newTestServer runs the full router over the in-memory store
func newTestServer(t *testing.T, cfg *config.Config, extra ...handler.Dependency) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := openStore(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	limiter := ratelimit.NewLimiter(cfg.RateLimitPerMinute, time.Minute)
	hub := events.NewHub(log)

	deps := append([]handler.Dependency{{Name: st.driver, Pinger: st.pinger}}, extra...)
	srv := httptest.NewServer(newRouter(cfg, log, st, st.employees, hub, limiter, deps))
	t.Cleanup(func() {
		srv.Close()
		limiter.Stop()
		st.close()
	})
	return &testServer{Server: srv, hub: hub}
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:        "production",
		StoreDriver:        config.StoreMemory,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		RateLimitPerMinute: 1000,
		RequestTimeout:     5 * time.Second,
	}
}

func (s *testServer) call(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, raw)
		}
	}
	return resp, out
}

func assertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

// TestHealthEndpoint verifies health check endpoint
func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	resp, body := server.call(t, http.MethodGet, "/healthz", "")
	assertStatusCode(t, resp, http.StatusOK)
	if body["status"] != "ok" {
		t.Fatalf("Expected status ok, got %v", body)
	}
}

// TestReadinessEndpoint verifies readiness reports each dependency
func TestReadinessEndpoint(t *testing.T) {
	server := newTestServer(t, nil, handler.Dependency{Name: "redis", Pinger: failingPinger{}, Optional: true})

	resp, body := server.call(t, http.MethodGet, "/readyz", "")
	assertStatusCode(t, resp, http.StatusOK)
	if body["status"] != "degraded" {
		t.Fatalf("Expected degraded with a failing cache, got %v", body)
	}
	checks, _ := body["checks"].(map[string]any)
	if checks[config.StoreMemory] != "ok" {
		t.Fatalf("Expected memory store check ok, got %v", checks)
	}
}

// TestMetricsEndpoint verifies requests are counted by route pattern
func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	server.call(t, http.MethodGet, "/task", "")
	server.call(t, http.MethodGet, "/no-such-route", "")

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Metrics endpoint failed: %v", err)
	}
	defer resp.Body.Close()
	assertStatusCode(t, resp, http.StatusOK)

	raw, _ := io.ReadAll(resp.Body)
	metrics := string(raw)
	if !strings.Contains(metrics, `workforce_http_requests_total{method="GET",path="GET /task",status="200"}`) {
		t.Fatalf("Expected request counter labelled by pattern")
	}
	if !strings.Contains(metrics, `path="unmatched"`) {
		t.Fatalf("Expected unmatched requests grouped under one label")
	}
}

// TestEmployeeTaskLifecycle drives the API through the full middleware chain
func TestEmployeeTaskLifecycle(t *testing.T) {
	server := newTestServer(t, nil)
	feed, unsubscribe := server.hub.Subscribe(8)
	defer unsubscribe()

	resp, body := server.call(t, http.MethodPost, "/employee",
		`{"firstName":"Grace","lastName":"Hopper","email":"Grace@Navy.mil","designation":"Engineer","department":"R&D"}`)
	assertStatusCode(t, resp, http.StatusCreated)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("Expected X-Request-ID on response")
	}
	employee, _ := body["employee"].(map[string]any)
	employeeID, _ := employee["id"].(string)
	if employeeID == "" || employee["email"] != "grace@navy.mil" {
		t.Fatalf("unexpected employee %v", body)
	}

	resp, body = server.call(t, http.MethodPost, "/task",
		`{"title":"Write compiler","assignedTo":"`+employeeID+`","dueDate":"2030-01-15","priority":"High"}`)
	assertStatusCode(t, resp, http.StatusCreated)
	task, _ := body["task"].(map[string]any)
	taskID, _ := task["id"].(string)
	assignee, _ := task["assignedTo"].(map[string]any)
	if taskID == "" || assignee["firstName"] != "Grace" || task["status"] != "Pending" {
		t.Fatalf("unexpected task %v", body)
	}

	resp, body = server.call(t, http.MethodPut, "/task/"+taskID, `{"status":"In Progress"}`)
	assertStatusCode(t, resp, http.StatusOK)
	if task, _ := body["task"].(map[string]any); task["status"] != "In Progress" {
		t.Fatalf("unexpected update %v", body)
	}

	resp, body = server.call(t, http.MethodGet, "/task", "")
	assertStatusCode(t, resp, http.StatusOK)
	if tasks, _ := body["tasks"].([]any); len(tasks) != 1 {
		t.Fatalf("expected one task, got %v", body)
	}

	resp, _ = server.call(t, http.MethodDelete, "/task/"+taskID, "")
	assertStatusCode(t, resp, http.StatusOK)
	resp, _ = server.call(t, http.MethodDelete, "/task/"+taskID, "")
	assertStatusCode(t, resp, http.StatusNotFound)

	want := []string{events.EmployeeCreated, events.TaskCreated, events.TaskUpdated, events.TaskDeleted}
	for _, typ := range want {
		select {
		case e := <-feed:
			if e.Type != typ {
				t.Fatalf("expected %s, got %s", typ, e.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("expected %s event", typ)
		}
	}
}

// TestUnsupportedMediaType verifies bodies must be JSON
func TestUnsupportedMediaType(t *testing.T) {
	server := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/employee", strings.NewReader(`firstName=Ada`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	assertStatusCode(t, resp, http.StatusUnsupportedMediaType)
}

// TestLegacyRoutesFollowEnvironment verifies the /api/v1 aliases default on only in development
func TestLegacyRoutesFollowEnvironment(t *testing.T) {
	prod := newTestServer(t, nil)
	resp, _ := prod.call(t, http.MethodGet, "/api/v1/task/getall", "")
	assertStatusCode(t, resp, http.StatusNotFound)

	cfg := testConfig()
	cfg.Environment = "development"
	dev := newTestServer(t, cfg)
	resp, body := dev.call(t, http.MethodGet, "/api/v1/task/getall", "")
	assertStatusCode(t, resp, http.StatusOK)
	if body["success"] != true {
		t.Fatalf("unexpected legacy response %v", body)
	}
}
