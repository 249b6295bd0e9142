package chat

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates an edit or delete targeted a message the platform no
// longer has.
var ErrNotFound = errors.New("chat: message not found")

// ProvisionError indicates workspace creation failed (quota, permissions).
type ProvisionError struct {
	Name string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision workspace %q: %v", e.Name, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// RecipientKind distinguishes direct-message recipients from channels.
type RecipientKind string

const (
	// RecipientUser addresses a user's direct-message inbox.
	RecipientUser RecipientKind = "user"
	// RecipientChannel addresses a text channel.
	RecipientChannel RecipientKind = "channel"
)

// Recipient identifies where a message is delivered.
type Recipient struct {
	Kind RecipientKind
	ID   string
}

// User addresses a user's direct messages.
func User(id string) Recipient { return Recipient{Kind: RecipientUser, ID: id} }

// Channel addresses a text channel.
func Channel(id string) Recipient { return Recipient{Kind: RecipientChannel, ID: id} }

// ButtonStyle selects the visual treatment of an interactive button.
type ButtonStyle string

const (
	StylePrimary   ButtonStyle = "primary"
	StyleSuccess   ButtonStyle = "success"
	StyleSecondary ButtonStyle = "secondary"
	StyleDanger    ButtonStyle = "danger"
)

// Button is one interactive affordance attached to a message. Token routes
// the press back to the owning session's handler.
type Button struct {
	Token string      `json:"token"`
	Label string      `json:"label"`
	Style ButtonStyle `json:"style"`
}

// Field is one name/value pair rendered inside a message card.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Message is fully rendered content for one message slot. Edits always carry
// the complete content; the platform replaces rather than patches, so
// reordered edit completions cannot leave a slot half-updated.
type Message struct {
	Content string  `json:"content,omitempty"`
	Title   string  `json:"title,omitempty"`
	Body    string  `json:"body,omitempty"`
	Color   uint32  `json:"color,omitempty"`
	Fields  []Field `json:"fields,omitempty"`
	Buttons []Button `json:"buttons,omitempty"`
}

// MessageHandle is the platform's reference to a delivered message.
type MessageHandle struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// Zero reports whether the handle refers to no message.
func (h MessageHandle) Zero() bool { return h.MessageID == "" }

// Workspace holds the provisioned grouping of channels backing one session.
type Workspace struct {
	CategoryID string `json:"category_id"`
	TextID     string `json:"text_id"`
	VoiceID    string `json:"voice_id"`
}

// Port is the capability surface the bot consumes from the chat platform.
type Port interface {
	// SendMessage delivers rendered content and returns the handle needed
	// for later edits.
	SendMessage(ctx context.Context, to Recipient, msg Message) (MessageHandle, error)
	// EditMessage replaces the full content of an existing message. Returns
	// ErrNotFound when the platform no longer has the message.
	EditMessage(ctx context.Context, handle MessageHandle, msg Message) error
	// DeleteMessage removes a message. Returns ErrNotFound when the platform
	// no longer has it.
	DeleteMessage(ctx context.Context, handle MessageHandle) error
	// ProvisionWorkspace creates the category, text and voice spaces for a
	// session. Fails with *ProvisionError.
	ProvisionWorkspace(ctx context.Context, name string) (Workspace, error)
	// TeardownWorkspace removes provisioned spaces. Best effort; absent
	// handles are no-ops.
	TeardownWorkspace(ctx context.Context, ws Workspace) error
	// VoiceOccupancy reports how many users currently occupy a voice space.
	VoiceOccupancy(ctx context.Context, voiceID string) (int, error)
	// VoiceMembers lists the ids of the users currently in a voice space.
	VoiceMembers(ctx context.Context, voiceID string) ([]string, error)
}
