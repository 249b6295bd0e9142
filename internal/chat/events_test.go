package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postEvent(t *testing.T, h http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEventHandlerRoutesMessage(t *testing.T) {
	var gotChannel, gotContent string
	h := NewEventHandler(EventHandlerConfig{
		OnMessage: func(_ *http.Request, userID, userName, channelID, content string) {
			gotChannel, gotContent = channelID, content
		},
	})

	rec := postEvent(t, h, "", `{"type":"message","user_id":"u1","user_name":"frost","channel_id":"lobby","content":"!help"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotChannel != "lobby" || gotContent != "!help" {
		t.Fatalf("unexpected routing %q %q", gotChannel, gotContent)
	}
}

func TestEventHandlerRoutesPress(t *testing.T) {
	var gotToken string
	h := NewEventHandler(EventHandlerConfig{
		OnPress: func(_ *http.Request, userID, userName, token string) { gotToken = token },
	})

	rec := postEvent(t, h, "", `{"type":"press","user_id":"u1","user_name":"frost","token":"tok-1"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotToken != "tok-1" {
		t.Fatalf("unexpected token %q", gotToken)
	}
}

func TestEventHandlerRejectsBadToken(t *testing.T) {
	called := false
	h := NewEventHandler(EventHandlerConfig{
		Token:     "secret",
		OnMessage: func(*http.Request, string, string, string, string) {},
		OnPress:   func(*http.Request, string, string, string) { called = true },
	})

	rec := postEvent(t, h, "wrong", `{"type":"press","token":"tok-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("expected no routing on auth failure")
	}
}

func TestEventHandlerAcknowledgesUnknownType(t *testing.T) {
	h := NewEventHandler(EventHandlerConfig{})

	rec := postEvent(t, h, "", `{"type":"typing"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for unknown type, got %d", rec.Code)
	}
}

func TestEventHandlerRejectsMalformedBody(t *testing.T) {
	h := NewEventHandler(EventHandlerConfig{})

	rec := postEvent(t, h, "", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEventHandlerRejectsGet(t *testing.T) {
	h := NewEventHandler(EventHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
