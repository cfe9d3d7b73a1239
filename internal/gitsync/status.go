package gitsync

import (
	"sync"
	"time"
)

// State classifies the outcome of the most recent sync operation.
type State string

const (
	StateIdle    State = "idle"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Status is the process-wide sync state record: the auto-sync flag
// plus the outcome of the last operation, whatever triggered it.
// All access goes through methods; the scheduler writes here and the
// HTTP layer reads snapshots.
type Status struct {
	mu          sync.Mutex
	enabled     bool
	state       State
	lastAttempt time.Time
	lastSuccess time.Time
	message     string
}

// Snapshot is the read-only JSON view served over HTTP.
type Snapshot struct {
	Enabled     bool   `json:"enabled"`
	State       State  `json:"state"`
	LastAttempt string `json:"last_attempt,omitempty"`
	LastSuccess string `json:"last_success,omitempty"`
	Message     string `json:"message,omitempty"`
}

func NewStatus() *Status {
	return &Status{state: StateIdle}
}

// Enabled reports whether automatic sync is switched on.
func (s *Status) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}

// SetEnabled flips the automatic sync flag.
func (s *Status) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = enabled
}

// Record stores the outcome of one sync operation.
func (s *Status) Record(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.lastAttempt = now
	s.message = res.Message
	if res.OK {
		s.state = StateSuccess
		s.lastSuccess = now
	} else {
		s.state = StateError
	}
}

// Snapshot returns a consistent copy of the record.
func (s *Status) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Enabled: s.enabled,
		State:   s.state,
		Message: s.message,
	}
	if !s.lastAttempt.IsZero() {
		snap.LastAttempt = s.lastAttempt.Format(time.RFC3339)
	}
	if !s.lastSuccess.IsZero() {
		snap.LastSuccess = s.lastSuccess.Format(time.RFC3339)
	}
	return snap
}
