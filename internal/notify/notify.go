// internal/notify/notify.go
//
// Shopadmin – Toast notifications.
//
// Context
//   The dialog surfaces two transient, dismissible messages: a success toast
//   after a product is created, and an error toast when a submission fails.
//   The form controller only depends on the small Sink interface; the admin
//   HTTP layer drains a per-session Buffer so the browser can render pending
//   toasts, and everything is mirrored to the structured log.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Kind distinguishes toast flavors.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Notification is one toast-style message.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Sink receives notifications emitted by the form controller.
type Sink interface {
	Notify(n Notification)
}

// -----------------------------------------------------------------------------
// Log sink
// -----------------------------------------------------------------------------

// LogSink writes every notification to the structured log.  Used as the
// fallback when no session buffer is attached.
type LogSink struct{ Log *zap.SugaredLogger }

// Notify implements Sink.
func (s LogSink) Notify(n Notification) {
	log := s.Log
	if log == nil {
		log = zap.S()
	}
	switch n.Kind {
	case Error:
		log.Warnw("notification", "kind", n.Kind, "message", n.Message)
	default:
		log.Infow("notification", "kind", n.Kind, "message", n.Message)
	}
}

// -----------------------------------------------------------------------------
// Session buffer
// -----------------------------------------------------------------------------

// maxPending caps undrained toasts per session; older ones are dropped first.
const maxPending = 8

// Buffer retains notifications until the browser polls for them.  Safe for
// concurrent use.  The zero value is NOT ready; use NewBuffer.
type Buffer struct {
	mu      sync.Mutex
	pending []Notification
	log     LogSink
}

// NewBuffer returns an empty buffer that also mirrors to log.
func NewBuffer(log *zap.SugaredLogger) *Buffer {
	return &Buffer{log: LogSink{Log: log}}
}

// Notify implements Sink.
func (b *Buffer) Notify(n Notification) {
	b.log.Notify(n)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, n)
	if len(b.pending) > maxPending {
		b.pending = b.pending[len(b.pending)-maxPending:]
	}
}

// Drain returns all pending notifications and clears the buffer.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
