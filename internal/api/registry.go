package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/afrolingo/internal/session"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry keeps live sessions in memory and forgets them after ttl without
// use. Each session is guarded by its own mutex so requests for different
// sessions never wait on each other. Sessions dropped before completion are
// handed to onExpire, so their heart changes are kept like any other
// abandoned attempt.
type Registry struct {
	ttl      time.Duration
	now      func() time.Time
	onExpire func(session.Summary)

	mx      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	mx       sync.Mutex
	session  *session.Session
	lastUsed time.Time
}

// NewRegistry creates a registry. onExpire may be nil.
func NewRegistry(ttl time.Duration, onExpire func(session.Summary)) *Registry {
	return &Registry{
		ttl:      ttl,
		now:      time.Now,
		onExpire: onExpire,
		entries:  make(map[string]*registryEntry, 100),
	}
}

// Put stores s under its id.
func (r *Registry) Put(s *session.Session) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.entries[s.ID()] = &registryEntry{session: s, lastUsed: r.now()}
}

// With runs fn with exclusive access to the session id.
func (r *Registry) With(id string, fn func(s *session.Session) error) error {
	r.mx.Lock()
	e, ok := r.entries[id]
	r.mx.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mx.Lock()
	defer e.mx.Unlock()
	e.lastUsed = r.now()
	return fn(e.session)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return len(r.entries)
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mx.Lock()
	var unfinished []session.Summary
	dropped := 0
	for id, e := range r.entries {
		if !e.mx.TryLock() {
			continue // in use
		}
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, id)
			dropped++
			if sum, ok := abandoned(e.session); ok {
				unfinished = append(unfinished, sum)
			}
		}
		e.mx.Unlock()
	}
	r.mx.Unlock()

	r.report(unfinished)
	return dropped
}

// Drain drops every session, reporting the unfinished ones, and returns how
// many were dropped. It waits for requests still holding a session.
func (r *Registry) Drain() int {
	r.mx.Lock()
	entries := r.entries
	r.entries = make(map[string]*registryEntry)
	r.mx.Unlock()

	var unfinished []session.Summary
	for _, e := range entries {
		e.mx.Lock()
		if sum, ok := abandoned(e.session); ok {
			unfinished = append(unfinished, sum)
		}
		e.mx.Unlock()
	}

	r.report(unfinished)
	return len(entries)
}

func (r *Registry) report(summaries []session.Summary) {
	if r.onExpire == nil {
		return
	}
	for _, sum := range summaries {
		r.onExpire(sum)
	}
}

// abandoned returns the summary of a session left before completion after
// at least one answer. Complete sessions were already reported.
func abandoned(s *session.Session) (session.Summary, bool) {
	if s.Phase() == session.PhaseComplete {
		return session.Summary{}, false
	}
	sum := s.Summary()
	return sum, sum.Attempts > 0
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
