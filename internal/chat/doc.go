// Package chat defines the notification port through which the bot reaches
// the community chat platform, together with an HTTP client for the chat
// gateway that fronts it.
//
// The rest of the codebase depends only on the Port interface: delivering and
// refreshing rendered messages, provisioning and tearing down session
// workspaces, and reading voice-space occupancy. Everything else about the
// platform (authentication, rate limits, wire formats) stays behind the
// gateway client.
package chat
