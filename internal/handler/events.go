package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aryan0dhankhar/workforce/internal/events"
)

const (
	eventBuffer  = 32
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
)

// EventsHandler streams change events to websocket clients
type EventsHandler struct {
	hub            *events.Hub
	logger         *slog.Logger
	allowedOrigins []string
}

// NewEventsHandler creates a new change-feed handler
func NewEventsHandler(hub *events.Hub, logger *slog.Logger, allowedOrigins []string) *EventsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventsHandler{hub: hub, logger: logger, allowedOrigins: allowedOrigins}
}

func (h *EventsHandler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// non-browser clients
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if allowed == "*" || origin == allowed {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// ServeHTTP handles GET /ws/events
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := h.upgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()

	feed, unsubscribe := h.hub.Subscribe(eventBuffer)
	defer unsubscribe()

	// The client never sends data; reading surfaces its close frame.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-feed:
			if !ok {
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteJSON(e); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Debug("websocket closed", slog.String("error", err.Error()))
				}
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
