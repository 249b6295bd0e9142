// Package interaction issues opaque tokens binding short-lived UI buttons to
// session callbacks, and routes inbound presses back to them. Tokens stay
// valid exactly as long as the owning session holds them; unknown tokens are
// silently ignored so late presses against a removed session are harmless.
package interaction

import (
	"fmt"
	"sync"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/platform/id"
)

// Press carries the context of one inbound button press.
type Press struct {
	User domain.User
}

// Action handles one button press.
type Action func(Press)

// Registry maps live tokens to their actions. It is shared by every session;
// each session tracks only the tokens it registered.
type Registry struct {
	mu      sync.Mutex
	actions map[string]Action
	misses  uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register binds fn to a fresh token and returns the button carrying it.
// Uniqueness is guaranteed by checking membership and regenerating on
// collision rather than trusting the random source.
func (r *Registry) Register(label string, style chat.ButtonStyle, fn Action) (chat.Button, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var token string
	for {
		generated, err := id.NewID()
		if err != nil {
			return chat.Button{}, fmt.Errorf("generate token: %w", err)
		}
		if _, taken := r.actions[generated]; !taken {
			token = generated
			break
		}
	}

	r.actions[token] = fn
	return chat.Button{Token: token, Label: label, Style: style}, nil
}

// Dispatch invokes the action bound to token at most once for this event.
// It reports whether a live action was found; unknown tokens are ignored.
func (r *Registry) Dispatch(token string, press Press) bool {
	r.mu.Lock()
	fn, ok := r.actions[token]
	if !ok {
		r.misses++
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	fn(press)
	return true
}

// Misses reports how many dispatches targeted unknown tokens.
func (r *Registry) Misses() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.misses
}

// Remove invalidates one token.
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, token)
}

// RemoveAll invalidates every token in tokens, typically all tokens owned by
// one session being deleted.
func (r *Registry) RemoveAll(tokens []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range tokens {
		delete(r.actions, token)
	}
}

// Len reports the number of live tokens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}
