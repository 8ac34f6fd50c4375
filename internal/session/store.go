// Package session keeps per-visitor state between requests. Each session
// owns one personal form state and one wizard state, lives only in memory,
// and evaporates after the idle TTL — abandoning the page leaves no trace.
// Sessions are independent; there is no shared state to lock across them.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ropiclub/attendance/internal/domain"
	"github.com/ropiclub/attendance/internal/form"
	"github.com/ropiclub/attendance/internal/wizard"
)

// Session is one visitor's in-memory state. The mutex serializes the
// visitor's own overlapping requests (e.g. a double-clicked submit); it is
// never held across sessions.
type Session struct {
	mu     sync.Mutex
	form   form.State
	wizard wizard.State
}

// UpdateForm applies fn to the form state under the session lock and
// returns the state fn produced. fn may perform the submit round-trip;
// holding the lock for its duration is what makes a double submit append
// the batch once.
func (s *Session) UpdateForm(fn func(form.State) form.State) form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = fn(s.form)
	return s.form
}

// UpdateWizard is UpdateForm's counterpart for the admin wizard state.
func (s *Session) UpdateWizard(fn func(wizard.State) wizard.State) wizard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizard = fn(s.wizard)
	return s.wizard
}

// FormState returns a copy of the current form state.
func (s *Session) FormState() form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// WizardState returns a copy of the current wizard state.
func (s *Session) WizardState() wizard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard
}

// Store issues and resolves sessions by ID.
type Store struct {
	sessions    *gocache.Cache
	roster      domain.Roster
	ttl         time.Duration
	defaultDate func() string
}

// NewStore constructs a Store. defaultDate supplies the wizard's initial
// occasion date at session creation (the generator's default); it is
// re-evaluated per session so long-running processes don't hand out a
// stale default.
func NewStore(roster domain.Roster, ttl time.Duration, defaultDate func() string) *Store {
	return &Store{
		sessions:    gocache.New(ttl, 10*time.Minute),
		roster:      roster,
		ttl:         ttl,
		defaultDate: defaultDate,
	}
}

// New creates a session with fully-populated default states and returns
// its ID. This is the single initialization step; no render path fills in
// defaults after the fact.
func (st *Store) New() (string, *Session) {
	id := uuid.NewString()
	sess := &Session{
		form:   form.NewState(st.roster),
		wizard: wizard.NewState(st.roster, st.defaultDate()),
	}
	st.sessions.Set(id, sess, st.ttl)
	return id, sess
}

// Get resolves id and slides its expiry. The second return is false for
// unknown or expired sessions; callers then issue a fresh one.
func (st *Store) Get(id string) (*Session, bool) {
	v, ok := st.sessions.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	st.sessions.Set(id, sess, st.ttl)
	return sess, true
}
