package domain

import (
	"errors"
	"strings"
	"time"
)

// Unbounded is the capacity value meaning no participant limit.
const Unbounded = 0

var (
	// ErrEmptyTopic indicates a missing or whitespace-only topic.
	ErrEmptyTopic = errors.New("topic is required")
	// ErrBadClockTime indicates a malformed HH:MM time token.
	ErrBadClockTime = errors.New("bad time format, use HH:MM")
	// ErrNonPositiveCapacity indicates an explicit capacity below one.
	ErrNonPositiveCapacity = errors.New("capacity must be positive")
	// ErrEmptyOwner indicates a missing owner identifier.
	ErrEmptyOwner = errors.New("owner is required")
)

// IsValidation reports whether err is a request-validation failure that
// should be surfaced to the requester rather than logged as a fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTopic) ||
		errors.Is(err, ErrBadClockTime) ||
		errors.Is(err, ErrNonPositiveCapacity) ||
		errors.Is(err, ErrEmptyOwner)
}

// User identifies one chat-platform user.
type User struct {
	ID   string
	Name string
}

// Info is the immutable metadata of one meetup, fixed at creation.
type Info struct {
	Owner    User
	Topic    string
	StartsAt time.Time
	// Capacity bounds the participant set; Unbounded means no limit.
	Capacity int
}

// CreateInput describes the metadata needed to create a meetup.
type CreateInput struct {
	Owner User
	Topic string
	// StartClock is the user-supplied HH:MM start token.
	StartClock string
	Capacity   int
}

// NormalizeCreateInput validates input metadata and resolves it into
// immutable meetup info. The start token resolves to today at that time, or
// tomorrow if that time has already elapsed relative to now.
func NormalizeCreateInput(input CreateInput, now time.Time) (Info, error) {
	if strings.TrimSpace(input.Owner.ID) == "" {
		return Info{}, ErrEmptyOwner
	}

	topic, err := SanitizeTopic(input.Topic)
	if err != nil {
		return Info{}, err
	}

	startsAt, err := ParseClockTime(input.StartClock, now)
	if err != nil {
		return Info{}, err
	}

	if input.Capacity < Unbounded {
		return Info{}, ErrNonPositiveCapacity
	}

	return Info{
		Owner:    input.Owner,
		Topic:    topic,
		StartsAt: startsAt,
		Capacity: input.Capacity,
	}, nil
}

// SanitizeTopic normalizes a topic for use as a workspace name: trimmed,
// lowercased, whitespace runs collapsed and replaced with dashes.
func SanitizeTopic(raw string) (string, error) {
	words := strings.Fields(strings.ToLower(raw))
	if len(words) == 0 {
		return "", ErrEmptyTopic
	}
	return strings.Join(words, "-"), nil
}
