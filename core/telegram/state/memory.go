package state

import (
	"sync"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
	tghelpers "github.com/m3rciful/shopbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

type session struct {
	Session
	touched time.Time
}

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*session
	ttl      time.Duration
}

// NewMemoryManager constructs an in-memory Manager. A positive ttl lazily
// expires abandoned sessions on next access; zero keeps them until the flow
// is completed, cancelled, or replaced.
func NewMemoryManager(ttl time.Duration) Manager {
	return &memoryManager{
		sessions: make(map[int64]*session),
		ttl:      ttl,
	}
}

// live returns the user's session, dropping it first when it has expired.
// Callers must hold the write lock.
func (m *memoryManager) live(userID int64) (*session, bool) {
	sess, ok := m.sessions[userID]
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && time.Since(sess.touched) > m.ttl {
		delete(m.sessions, userID)
		return nil, false
	}
	return sess, true
}

// Start unconditionally replaces any in-progress session for the user.
func (m *memoryManager) Start(userID int64, flow Flow, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &session{
		Session: Session{
			Flow:   flow,
			Step:   step,
			Fields: make(map[string]interface{}),
		},
		touched: time.Now(),
	}
}

// Current returns the user's active flow and step, or the none sentinels.
func (m *memoryManager) Current(userID int64) (Flow, Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.live(userID); ok {
		return sess.Flow, sess.Step
	}
	return FlowNone, StepNone
}

// SetField merges one field into the session; no-op without an active flow.
func (m *memoryManager) SetField(userID int64, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.live(userID)
	if !ok {
		return
	}
	sess.Fields[key] = value
	sess.touched = time.Now()
}

// Field reads a collected field from the session.
func (m *memoryManager) Field(userID int64, key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.live(userID)
	if !ok {
		return nil, false
	}
	val, ok := sess.Fields[key]
	return val, ok
}

// Advance transitions the session to the next step keeping collected fields.
func (m *memoryManager) Advance(userID int64, next Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.live(userID)
	if !ok {
		return
	}
	sess.Step = next
	sess.touched = time.Now()
}

// Complete returns the collected fields and clears the session.
func (m *memoryManager) Complete(userID int64) map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.live(userID)
	if !ok {
		return nil
	}
	delete(m.sessions, userID)
	return sess.Fields
}

// Cancel clears the session without returning data.
func (m *memoryManager) Cancel(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// InProgress reports whether the user currently has an active flow.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live(userID)
	return ok
}

// ManagerHandler executes the handler function registered for the user's
// current step, if any.
func (m *memoryManager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	flow, step := m.Current(userID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("flow", string(flow)),
		slog.String("step", string(step)),
	)

	if handler, ok := stepHandlers[step]; ok {
		return handler(c)
	}
	return nil
}
