// Package chatfakes provides a recording in-memory implementation of the
// chat port for tests.
package chatfakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/frostbyte-gg/meetup/internal/chat"
)

// Sent records one delivered message.
type Sent struct {
	To     chat.Recipient
	Msg    chat.Message
	Handle chat.MessageHandle
}

// Edit records one edit applied to a handle.
type Edit struct {
	Handle chat.MessageHandle
	Msg    chat.Message
}

// Fake implements chat.Port, recording every call. Error fields, when set,
// are returned by the corresponding method.
type Fake struct {
	mu sync.Mutex

	SendErr      error
	EditErr      error
	DeleteErr    error
	ProvisionErr error
	TeardownErr  error
	OccupancyErr error

	// Occupancy maps voice ids to the member ids VoiceOccupancy and
	// VoiceMembers report.
	Occupancy map[string][]string

	sends      []Sent
	edits      []Edit
	deletes    []chat.MessageHandle
	workspaces []chat.Workspace
	teardowns  []chat.Workspace
	nextID     int
	// live tracks messages that have been sent and not deleted, so edits
	// against unknown handles surface as chat.ErrNotFound like the real
	// platform.
	live map[chat.MessageHandle]chat.Message
}

// New returns an empty fake.
func New() *Fake {
	return &Fake{
		Occupancy: make(map[string][]string),
		live:      make(map[chat.MessageHandle]chat.Message),
	}
}

func (f *Fake) SendMessage(ctx context.Context, to chat.Recipient, msg chat.Message) (chat.MessageHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return chat.MessageHandle{}, f.SendErr
	}
	f.nextID++
	handle := chat.MessageHandle{
		ChannelID: string(to.Kind) + ":" + to.ID,
		MessageID: fmt.Sprintf("m%d", f.nextID),
	}
	f.sends = append(f.sends, Sent{To: to, Msg: msg, Handle: handle})
	f.live[handle] = msg
	return handle, nil
}

func (f *Fake) EditMessage(ctx context.Context, handle chat.MessageHandle, msg chat.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EditErr != nil {
		return f.EditErr
	}
	if _, ok := f.live[handle]; !ok {
		return chat.ErrNotFound
	}
	f.edits = append(f.edits, Edit{Handle: handle, Msg: msg})
	f.live[handle] = msg
	return nil
}

func (f *Fake) DeleteMessage(ctx context.Context, handle chat.MessageHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.live[handle]; !ok {
		return chat.ErrNotFound
	}
	delete(f.live, handle)
	f.deletes = append(f.deletes, handle)
	return nil
}

func (f *Fake) ProvisionWorkspace(ctx context.Context, name string) (chat.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProvisionErr != nil {
		return chat.Workspace{}, &chat.ProvisionError{Name: name, Err: f.ProvisionErr}
	}
	f.nextID++
	ws := chat.Workspace{
		CategoryID: fmt.Sprintf("cat-%s-%d", name, f.nextID),
		TextID:     fmt.Sprintf("text-%s-%d", name, f.nextID),
		VoiceID:    fmt.Sprintf("voice-%s-%d", name, f.nextID),
	}
	f.workspaces = append(f.workspaces, ws)
	return ws, nil
}

func (f *Fake) TeardownWorkspace(ctx context.Context, ws chat.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TeardownErr != nil {
		return f.TeardownErr
	}
	f.teardowns = append(f.teardowns, ws)
	return nil
}

func (f *Fake) VoiceOccupancy(ctx context.Context, voiceID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OccupancyErr != nil {
		return 0, f.OccupancyErr
	}
	return len(f.Occupancy[voiceID]), nil
}

func (f *Fake) VoiceMembers(ctx context.Context, voiceID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OccupancyErr != nil {
		return nil, f.OccupancyErr
	}
	return append([]string(nil), f.Occupancy[voiceID]...), nil
}

// SetOccupancy replaces the member ids reported for a voice id.
func (f *Fake) SetOccupancy(voiceID string, members ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Occupancy[voiceID] = members
}

// Sends returns a copy of every recorded send.
func (f *Fake) Sends() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Sent(nil), f.sends...)
}

// Edits returns a copy of every recorded edit.
func (f *Fake) Edits() []Edit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Edit(nil), f.edits...)
}

// Deletes returns a copy of every recorded delete.
func (f *Fake) Deletes() []chat.MessageHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]chat.MessageHandle(nil), f.deletes...)
}

// Workspaces returns every provisioned workspace.
func (f *Fake) Workspaces() []chat.Workspace {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]chat.Workspace(nil), f.workspaces...)
}

// Teardowns returns every workspace passed to TeardownWorkspace.
func (f *Fake) Teardowns() []chat.Workspace {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]chat.Workspace(nil), f.teardowns...)
}

// Content returns the current content of a live message, if any.
func (f *Fake) Content(handle chat.MessageHandle) (chat.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.live[handle]
	return msg, ok
}
