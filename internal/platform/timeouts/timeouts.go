// Package timeouts defines shared duration constants used across the bot.
// Centralizing these values prevents drift between the session lifecycle and
// the process wiring, and makes the offsets discoverable.
package timeouts

import "time"

// ReminderLead is how long before the start instant the reminder notice is
// sent to participants not yet in the voice space.
const ReminderLead = 10 * time.Minute

// ProvisionLead is how long before the start instant the session workspace
// (category + text + voice) is provisioned. Sessions created inside this
// window provision immediately.
const ProvisionLead = 30 * time.Minute

// AbsenceDelay is how long after the start instant absent participants are
// nudged and maybe-participants are offered remaining seats.
const AbsenceDelay = 5 * time.Minute

// OccupancyCheckPeriod is the interval of the repeating voice-occupancy
// check that ends a started session once the voice space drains.
const OccupancyCheckPeriod = 15 * time.Minute

// GatewayRequest caps the time allowed for a single chat-gateway HTTP call.
const GatewayRequest = 10 * time.Second

// Shutdown limits how long process teardown waits for in-flight work.
const Shutdown = 5 * time.Second
