package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/events"
)

func TestRunRecordsEventsUntilFeedCloses(t *testing.T) {
	var buf bytes.Buffer
	al := NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	feed := make(chan events.Event, 2)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	feed <- events.Event{Type: events.TaskUpdated, ID: "t1", At: at}
	feed <- events.Event{Type: "reindex", ID: "x", At: at}
	close(feed)

	al.Run(context.Background(), feed)

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first record: %v", err)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second record: %v", err)
	}

	if first["msg"] != "audit" || first["action"] != "updated" || first["resource"] != "task" || first["resource_id"] != "t1" {
		t.Fatalf("unexpected record %v", first)
	}
	if second["action"] != "reindex" || second["resource"] != "unknown" {
		t.Fatalf("unexpected record for untyped event %v", second)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	al := NewLogger(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		al.Run(ctx, make(chan events.Event))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected Run to return after cancel")
	}
}
