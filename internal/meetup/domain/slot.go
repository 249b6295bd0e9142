package domain

// Slot addresses one rendered-message position owned by a session. Absence
// of a handle for a slot is meaningful: the message was never sent or has
// been withdrawn.
type Slot string

const (
	// SlotGeneral is the joinable announcement in the originating channel.
	SlotGeneral Slot = "general"
	// SlotOwner is the owner's direct message with the cancel control.
	SlotOwner Slot = "owner"
	// SlotChannel is the announcement inside the provisioned text space.
	SlotChannel Slot = "channel"
)

// SlotParticipant addresses the direct message sent to a confirmed
// participant.
func SlotParticipant(userID string) Slot { return Slot("participant:" + userID) }

// SlotMaybe addresses the direct message sent to a maybe-participant.
func SlotMaybe(userID string) Slot { return Slot("maybe:" + userID) }
