package state

import tele "gopkg.in/telebot.v4"

// Flow names a multi-step conversation (checkout, add_product, ...).
type Flow string

// Step identifies a single position inside a flow.
type Step string

const (
	// FlowNone indicates there is no active conversation with the user.
	FlowNone Flow = ""
	// StepNone is reported when the user has no active flow.
	StepNone Step = ""
)

// Session stores the active flow, its current step and the fields collected
// so far for a single user.
type Session struct {
	Flow   Flow
	Step   Step
	Fields map[string]interface{}
}

// Manager tracks per-user dialogue sessions and exposes flow transitions.
// A user has at most one session: Start replaces whatever was in progress.
type Manager interface {
	// Start unconditionally begins a flow at the given step, discarding any
	// previous session for the user.
	Start(userID int64, flow Flow, step Step)
	// Current returns the active flow and step, or FlowNone/StepNone.
	Current(userID int64) (Flow, Step)
	// SetField merges one collected field into the session. It is a no-op
	// when the user has no active flow; callers check Current first.
	SetField(userID int64, key string, value interface{})
	// Field reads a previously collected field.
	Field(userID int64, key string) (interface{}, bool)
	// Advance moves the session to the next step keeping collected fields.
	Advance(userID int64, next Step)
	// Complete returns all collected fields and clears the session.
	Complete(userID int64) map[string]interface{}
	// Cancel clears the session without returning data.
	Cancel(userID int64)

	// InProgress reports whether the user currently has an active flow.
	InProgress(userID int64) bool
	// ManagerHandler executes the handler registered for the user's current
	// step, if any.
	ManagerHandler(c tele.Context) error
}
