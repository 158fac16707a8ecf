package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/events"
)

// Logger writes one structured audit record per committed mutation
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger writing to logger, or slog.Default when nil
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Run records every event received on feed until ctx is done or feed is closed
func (al *Logger) Run(ctx context.Context, feed <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-feed:
			if !ok {
				return
			}
			al.LogEvent(ctx, e)
		}
	}
}

// LogEvent records a single change event. Event types are "<resource>.<action>".
func (al *Logger) LogEvent(ctx context.Context, e events.Event) {
	resource, action, found := strings.Cut(e.Type, ".")
	if !found {
		action = e.Type
		resource = "unknown"
	}
	al.LogAction(ctx, action, resource, e.ID, e.At)
}

// LogAction writes an "audit" record for action on resource resourceID at time at
func (al *Logger) LogAction(ctx context.Context, action, resource, resourceID string, at time.Time) {
	al.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.Time("timestamp", at),
	)
}
