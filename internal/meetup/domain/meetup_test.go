package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSanitizeTopic(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		err   error
	}{
		{name: "simple", raw: "catan", want: "catan"},
		{name: "spaces to dashes", raw: "catan night", want: "catan-night"},
		{name: "collapses runs", raw: "  Catan   Night  ", want: "catan-night"},
		{name: "lowercases", raw: "CATAN", want: "catan"},
		{name: "empty", raw: "", err: ErrEmptyTopic},
		{name: "whitespace only", raw: "   \t ", err: ErrEmptyTopic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeTopic(tc.raw)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("sanitize topic: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeCreateInput(t *testing.T) {
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	owner := User{ID: "u1", Name: "frost"}

	info, err := NormalizeCreateInput(CreateInput{
		Owner:      owner,
		Topic:      "Catan Night",
		StartClock: "23:59",
		Capacity:   4,
	}, now)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if info.Topic != "catan-night" {
		t.Fatalf("expected sanitized topic, got %q", info.Topic)
	}
	want := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	if !info.StartsAt.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, info.StartsAt)
	}
	if info.Capacity != 4 {
		t.Fatalf("expected capacity 4, got %d", info.Capacity)
	}
}

func TestNormalizeCreateInputErrors(t *testing.T) {
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	owner := User{ID: "u1"}

	tests := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{
			name:  "empty owner",
			input: CreateInput{Topic: "catan", StartClock: "23:00"},
			want:  ErrEmptyOwner,
		},
		{
			name:  "empty topic",
			input: CreateInput{Owner: owner, Topic: " ", StartClock: "23:00"},
			want:  ErrEmptyTopic,
		},
		{
			name:  "bad clock",
			input: CreateInput{Owner: owner, Topic: "catan", StartClock: "9:5"},
			want:  ErrBadClockTime,
		},
		{
			name:  "negative capacity",
			input: CreateInput{Owner: owner, Topic: "catan", StartClock: "23:00", Capacity: -1},
			want:  ErrNonPositiveCapacity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeCreateInput(tc.input, now)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
