package interaction

import (
	"testing"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
)

func TestRegisterIssuesUniqueTokens(t *testing.T) {
	r := NewRegistry()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		button, err := r.Register("Join", chat.StyleSuccess, func(Press) {})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if button.Token == "" {
			t.Fatal("expected non-empty token")
		}
		if _, dup := seen[button.Token]; dup {
			t.Fatalf("duplicate token %q", button.Token)
		}
		seen[button.Token] = struct{}{}
	}
	if r.Len() != 50 {
		t.Fatalf("expected 50 live tokens, got %d", r.Len())
	}
}

func TestDispatchInvokesAction(t *testing.T) {
	r := NewRegistry()

	var got Press
	button, err := r.Register("Join", chat.StyleSuccess, func(p Press) { got = p })
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	press := Press{User: domain.User{ID: "u1", Name: "frost"}}
	if !r.Dispatch(button.Token, press) {
		t.Fatal("expected dispatch to find the action")
	}
	if got.User.ID != "u1" {
		t.Fatalf("expected press for u1, got %+v", got)
	}
}

func TestDispatchUnknownTokenIsNoop(t *testing.T) {
	r := NewRegistry()

	if r.Dispatch("missing", Press{}) {
		t.Fatal("expected unknown token to be ignored")
	}
	if r.Misses() != 1 {
		t.Fatalf("expected 1 recorded miss, got %d", r.Misses())
	}
}

func TestRemoveInvalidatesToken(t *testing.T) {
	r := NewRegistry()

	called := 0
	button, err := r.Register("Cancel", chat.StyleDanger, func(Press) { called++ })
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	r.Remove(button.Token)
	if r.Dispatch(button.Token, Press{}) {
		t.Fatal("expected removed token to be ignored")
	}
	if called != 0 {
		t.Fatalf("expected no calls, got %d", called)
	}
}

func TestRemoveAll(t *testing.T) {
	r := NewRegistry()

	var tokens []string
	for i := 0; i < 5; i++ {
		button, err := r.Register("Join", chat.StyleSuccess, func(Press) {})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		tokens = append(tokens, button.Token)
	}
	keep, err := r.Register("Maybe", chat.StyleSecondary, func(Press) {})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	r.RemoveAll(tokens)
	if r.Len() != 1 {
		t.Fatalf("expected 1 live token, got %d", r.Len())
	}
	if !r.Dispatch(keep.Token, Press{}) {
		t.Fatal("unrelated token should survive RemoveAll")
	}
}
