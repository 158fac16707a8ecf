package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	b := New("test", Config{MaxRequests: 1, Timeout: time.Minute, ConsecutiveFailures: 3}, nil)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		if _, err := Execute(b, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i, err)
		}
	}

	if b.State() != "open" {
		t.Fatalf("expected open state, got %s", b.State())
	}

	called := false
	_, err := Execute(b, func() (int, error) {
		called = true
		return 1, nil
	})
	if !IsOpen(err) {
		t.Fatalf("expected open-state error, got %v", err)
	}
	if called {
		t.Fatalf("expected fn not to run while open")
	}
}

func TestBreakerPassesResults(t *testing.T) {
	b := New("test", DefaultConfig(), nil)
	got, err := Execute(b, func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("expected ok, got %q err=%v", got, err)
	}
	if b.State() != "closed" {
		t.Fatalf("expected closed state, got %s", b.State())
	}
}
