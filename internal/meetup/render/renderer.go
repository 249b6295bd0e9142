// Package render produces the full message content for every meetup slot
// and transient notice. Rendering is pure: the same state yields
// byte-identical content, which is what makes the re-render pass idempotent.
package render

import (
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/platform/timeouts"
)

const (
	colorActive = 0x00ff00
	colorNotice = 0xffff00
	colorFinal  = 0xff0000
)

// Localizer is the minimal message-printer contract required by the renderer.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// State is the snapshot of session state a render pass works from.
type State struct {
	ID           int64
	Topic        string
	Owner        string
	StartsAt     time.Time
	Capacity     int
	Participants []domain.User
	Maybes       []domain.User
	// VoiceID is the provisioned voice space, empty until provisioning runs.
	VoiceID string

	GeneralButtons []chat.Button
	OwnerButtons   []chat.Button
}

// Full reports whether the participant set has reached capacity.
func (s State) Full() bool {
	return s.Capacity != domain.Unbounded && len(s.Participants) >= s.Capacity
}

// SeatsLeft returns the remaining capacity given the current voice occupancy.
func (s State) SeatsLeft(occupancy int) int {
	if s.Capacity == domain.Unbounded {
		return 0
	}
	left := s.Capacity - occupancy
	if left < 0 {
		left = 0
	}
	return left
}

// Renderer builds localized messages from session state.
type Renderer struct {
	loc Localizer
}

// New creates a renderer over the given localizer.
func New(loc Localizer) *Renderer {
	return &Renderer{loc: loc}
}

func (r *Renderer) title(s State) string {
	return r.loc.Sprintf("meetup.title", s.Topic, domain.FormatClockTime(s.StartsAt))
}

// card builds the embed shared by every standing slot: header fields plus
// the attendance list.
func (r *Renderer) card(s State) chat.Message {
	msg := chat.Message{
		Title: r.title(s),
		Body:  r.loc.Sprintf("meetup.description", s.Owner),
		Color: colorActive,
	}

	if s.Capacity != domain.Unbounded {
		count := r.loc.Sprintf("meetup.count", len(s.Participants), s.Capacity)
		if s.Full() {
			count = r.loc.Sprintf("meetup.count_full", len(s.Participants), s.Capacity)
		}
		msg.Fields = append(msg.Fields, chat.Field{
			Name:   r.loc.Sprintf("meetup.field.participants"),
			Value:  count,
			Inline: true,
		})
	}

	msg.Fields = append(msg.Fields,
		chat.Field{Name: r.loc.Sprintf("meetup.field.creator"), Value: s.Owner, Inline: true},
		chat.Field{Name: r.loc.Sprintf("meetup.field.date"), Value: s.StartsAt.Format("02/01/2006"), Inline: true},
		chat.Field{Name: "\u200b", Value: r.loc.Sprintf("meetup.field.list")},
	)

	joined := r.loc.Sprintf("meetup.joined")
	for _, p := range s.Participants {
		msg.Fields = append(msg.Fields, chat.Field{Name: p.Name, Value: joined, Inline: true})
	}
	// Maybe-participants are only advertised while seats remain.
	if !s.Full() {
		maybe := r.loc.Sprintf("meetup.maybe")
		for _, p := range s.Maybes {
			msg.Fields = append(msg.Fields, chat.Field{Name: p.Name, Value: maybe, Inline: true})
		}
	}
	return msg
}

// General renders the joinable announcement in the originating channel. The
// join buttons disappear once the session is full.
func (r *Renderer) General(s State) chat.Message {
	msg := r.card(s)
	if !s.Full() {
		msg.Buttons = s.GeneralButtons
	}
	return msg
}

// Owner renders the owner's direct message with the cancel control.
func (r *Renderer) Owner(s State) chat.Message {
	msg := r.card(s)
	msg.Content = r.loc.Sprintf("meetup.owner.body")
	msg.Buttons = s.OwnerButtons
	return msg
}

// Participant renders the direct message for one confirmed participant.
func (r *Renderer) Participant(s State, cancel chat.Button) chat.Message {
	msg := r.card(s)
	msg.Content = r.loc.Sprintf("meetup.participant.body")
	msg.Buttons = []chat.Button{cancel}
	return msg
}

// Maybe renders the direct message for one maybe-participant. The confirm
// affordance disappears once the session is full.
func (r *Renderer) Maybe(s State, confirm, cancel chat.Button) chat.Message {
	msg := r.card(s)
	msg.Content = r.loc.Sprintf("meetup.maybe.body")
	if !s.Full() {
		msg.Buttons = []chat.Button{confirm, cancel}
	} else {
		msg.Buttons = []chat.Button{cancel}
	}
	return msg
}

// ChannelAnnouncement renders the post inside the provisioned text space,
// mentioning every confirmed participant.
func (r *Renderer) ChannelAnnouncement(s State) chat.Message {
	mentions := make([]string, 0, len(s.Participants))
	for _, p := range s.Participants {
		mentions = append(mentions, "<@"+p.ID+">")
	}
	msg := r.card(s)
	msg.Content = strings.Join(mentions, " ")
	return msg
}

// Reminder renders the pre-start notice for participants not yet in voice.
func (r *Renderer) Reminder(s State) chat.Message {
	return chat.Message{
		Content: "<#" + s.VoiceID + ">",
		Title:   r.loc.Sprintf("meetup.reminder.title"),
		Body:    r.loc.Sprintf("meetup.reminder.body", s.Topic, int(timeouts.ReminderLead.Minutes())),
		Color:   colorNotice,
	}
}

// Started renders the start announcement. The voice pointer is included for
// direct messages and omitted inside the workspace itself.
func (r *Renderer) Started(s State, mentionVoice bool) chat.Message {
	msg := chat.Message{
		Title: r.loc.Sprintf("meetup.started.title"),
		Body:  r.loc.Sprintf("meetup.started.body", s.Topic),
		Color: colorNotice,
	}
	if mentionVoice {
		msg.Content = "<#" + s.VoiceID + ">"
	}
	return msg
}

// Absent renders the post-start nudge for participants missing from voice.
func (r *Renderer) Absent(s State) chat.Message {
	return chat.Message{
		Content: "<#" + s.VoiceID + ">",
		Title:   r.loc.Sprintf("meetup.absent.title"),
		Body:    r.loc.Sprintf("meetup.absent.body", s.Topic),
		Color:   colorFinal,
	}
}

// StillRoom renders the seats-remaining nudge for maybe-participants.
func (r *Renderer) StillRoom(s State, seatsLeft int) chat.Message {
	return chat.Message{
		Content: "<#" + s.VoiceID + ">",
		Title:   r.loc.Sprintf("meetup.reminder.title"),
		Body:    r.loc.Sprintf("meetup.stillroom.body", s.Topic, seatsLeft),
		Color:   colorNotice,
	}
}

// Cancelled renders the notice that replaces every slot on owner cancel.
func (r *Renderer) Cancelled(s State) chat.Message {
	return chat.Message{
		Content: r.loc.Sprintf("meetup.cancelled.content"),
		Title:   r.loc.Sprintf("meetup.cancelled.title"),
		Body:    r.loc.Sprintf("meetup.cancelled.body", s.Topic, s.Owner),
		Color:   colorFinal,
	}
}

// Over renders the completion summary listing the final participants.
func (r *Renderer) Over(s State) chat.Message {
	names := make([]string, 0, len(s.Participants))
	for _, p := range s.Participants {
		names = append(names, p.Name)
	}
	return chat.Message{
		Title: r.loc.Sprintf("meetup.over.title"),
		Body:  r.loc.Sprintf("meetup.over.body", s.Topic, strings.Join(names, ", ")),
		Color: colorFinal,
	}
}

// Withdrawn renders the final edit applied to a user's own message when they
// cancel their participation.
func (r *Renderer) Withdrawn(s State) chat.Message {
	return chat.Message{
		Title: r.title(s),
		Body:  r.loc.Sprintf("meetup.withdrawn.body"),
		Color: colorFinal,
	}
}
