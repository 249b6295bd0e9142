// Package meetup serves as an umbrella for game-meetup coordination
// functionality, including the session lifecycle state machine and its
// supporting registries.
//
// The package is organized into five subpackages:
//   - domain: Defines meetup metadata, validation, lifecycle phases, and
//     message-slot addressing.
//   - schedule: One-shot and repeating timer dispatch with per-session bulk
//     cancellation.
//   - interaction: The opaque-token button registry routing presses back to
//     the owning session.
//   - render: Localized message content for every slot and notice.
//   - service: The live session registry and the per-session state machine.
package meetup
