// internal/session/session.go
//
// Shopadmin – Dialog sessions.
//
// Context
//   Each browser gets a cookie-identified session holding its own form
//   controller and toast buffer, so two admins never share a draft.  The
//   registry is LRU-capped: when an abandoned dialog is pushed out, its
//   controller is closed, which also marks any in-flight submission stale so
//   a late resolution cannot touch a recycled session.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/cache"
	"github.com/yanizio/shopadmin/internal/form"
	"github.com/yanizio/shopadmin/internal/notify"
)

const cookieName = "shopadmin_session"

// Session is one admin's dialog state.
type Session struct {
	ID         string
	Controller *form.Controller
	Toasts     *notify.Buffer
}

// Manager hands out sessions keyed by cookie.  Safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	lru       *cache.LRU
	submitter form.Submitter
	log       *zap.SugaredLogger
}

// NewManager returns a registry capped at capacity live sessions.  All
// sessions share one submitter; each gets its own controller and buffer.
func NewManager(capacity int, submitter form.Submitter, log *zap.SugaredLogger) *Manager {
	if log == nil {
		log = zap.S()
	}
	m := &Manager{submitter: submitter, log: log}
	m.lru = cache.New(capacity, func(key, val any) {
		// Eviction counts as Close: edits are discarded, and an in-flight
		// submission resolves into a stale no-op.
		sess := val.(*Session)
		sess.Controller.Close()
		log.Infow("dialog session evicted", "session", key)
	})
	return m
}

// Get returns the session for r's cookie, creating one (and setting the
// cookie) when absent or unknown.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		m.mu.Lock()
		if v, ok := m.lru.Get(c.Value); ok {
			m.mu.Unlock()
			return v.(*Session)
		}
		m.mu.Unlock()
	}

	sess := &Session{ID: uuid.NewString(), Toasts: notify.NewBuffer(m.log)}
	sess.Controller = form.NewController(m.submitter, sess.Toasts, m.log)

	m.mu.Lock()
	m.lru.Add(sess.ID, sess)
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return sess
}

// Len reports live sessions; used by tests and the debug endpoint.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
