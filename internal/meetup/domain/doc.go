// Package domain defines the meetup entity metadata, its lifecycle phases,
// input validation, and message-slot addressing. Everything here is pure:
// time flows in through arguments, never from the wall clock.
package domain
