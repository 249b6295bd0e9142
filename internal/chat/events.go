package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Event kinds pushed by the gateway.
const (
	EventMessage = "message"
	EventPress   = "press"
)

// Event is one inbound gateway webhook payload.
type Event struct {
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	ChannelID string `json:"channel_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Token     string `json:"token,omitempty"`
}

// EventHandlerConfig configures the inbound webhook endpoint.
type EventHandlerConfig struct {
	// Token, when set, must match the Bearer token on every request.
	Token string
	// OnMessage receives channel messages.
	OnMessage func(r *http.Request, userID, userName, channelID, content string)
	// OnPress receives button presses.
	OnPress func(r *http.Request, userID, userName, token string)
	// Logger is used for malformed payloads. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// NewEventHandler returns the HTTP handler the gateway delivers events to.
// Events are acknowledged with 204 once routed; unknown event types are
// acknowledged and dropped so a newer gateway does not wedge delivery.
func NewEventHandler(cfg EventHandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if cfg.Token != "" && r.Header.Get("Authorization") != "Bearer "+cfg.Token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var ev Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			logger.Warn("malformed event payload", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch ev.Type {
		case EventMessage:
			if cfg.OnMessage != nil {
				cfg.OnMessage(r, ev.UserID, ev.UserName, ev.ChannelID, ev.Content)
			}
		case EventPress:
			if cfg.OnPress != nil {
				cfg.OnPress(r, ev.UserID, ev.UserName, ev.Token)
			}
		default:
			logger.Warn("unknown event type", "type", ev.Type)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
