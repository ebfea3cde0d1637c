// Package state provides a lightweight per-user dialogue state machine for
// Telegram bots: a named flow, its current step, and the fields collected so
// far. It is intentionally domain-agnostic so it can be reused across bots.
package state
