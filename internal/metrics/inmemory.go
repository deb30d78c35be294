package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LoginSuccesses  uint64
	LoginFailures   uint64
	UsersRegistered uint64
	MessagesSent    uint64
	MessagesRead    uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	loginSuccesses  uint64
	loginFailures   uint64
	usersRegistered uint64
	messagesSent    uint64
	messagesRead    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		LoginSuccesses:  atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		MessagesSent:    atomic.LoadUint64(&m.messagesSent),
		MessagesRead:    atomic.LoadUint64(&m.messagesRead),
	}
}

// IncLoginSuccess increments the successful-login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed-login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncMessageSent increments the messages-sent counter.
func (m *InMemoryRecorder) IncMessageSent() {
	atomic.AddUint64(&m.messagesSent, 1)
}

// IncMessageRead increments the messages-read counter.
func (m *InMemoryRecorder) IncMessageRead() {
	atomic.AddUint64(&m.messagesRead, 1)
}
