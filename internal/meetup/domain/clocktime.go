package domain

import (
	"regexp"
	"strconv"
	"time"
)

// clockTimePattern accepts exactly two-digit hour, colon, two-digit minute.
var clockTimePattern = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}$`)

// ParseClockTime resolves a 24-hour HH:MM token to the next occurrence of
// that time of day relative to now, in now's location. Tokens missing
// leading zeros or out of range fail with ErrBadClockTime.
func ParseClockTime(raw string, now time.Time) (time.Time, error) {
	if !clockTimePattern.MatchString(raw) {
		return time.Time{}, ErrBadClockTime
	}

	hour, err := strconv.Atoi(raw[:2])
	if err != nil || hour > 23 {
		return time.Time{}, ErrBadClockTime
	}
	minute, err := strconv.Atoi(raw[3:])
	if err != nil || minute > 59 {
		return time.Time{}, ErrBadClockTime
	}

	resolved := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if resolved.Before(now) {
		resolved = resolved.AddDate(0, 0, 1)
	}
	return resolved, nil
}

// FormatClockTime renders an instant as the HH:MM token users typed.
func FormatClockTime(t time.Time) string {
	return t.Format("15:04")
}
