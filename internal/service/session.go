package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"smoothies/internal/model"
)

// Session is the per-visitor form state. It lives from Acquire until it is
// released explicitly or swept after ttl of inactivity.
type Session struct {
	ID string

	mu         sync.Mutex
	selection  model.Selection
	name       string
	banner     *model.Banner
	submitting bool
	lastSeen   time.Time
}

type SessionSnapshot struct {
	Selection model.Selection
	Name      string
	Banner    *model.Banner
	State     model.PageState
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		Selection: s.selection,
		Name:      s.name,
		Banner:    s.banner,
		State:     s.stateLocked(),
	}
}

func (s *Session) State() model.PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() model.PageState {
	switch {
	case s.submitting:
		return model.StateSubmitting
	case s.selection.Empty():
		return model.StateIdle
	default:
		return model.StateSelected
	}
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	s.name = SanitizeName(name)
	s.mu.Unlock()
}

// Select replaces the current selection. Unknown names or more than
// MaxSelections items are rejected and the previous selection is kept.
func (s *Session) Select(catalog *model.Catalog, names []string) error {
	for _, name := range names {
		if !catalog.Contains(name) {
			return &FruitError{Fruit: name, Err: ErrUnknownFruit}
		}
	}
	sel, err := model.NewSelection(names...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.selection = sel
	s.mu.Unlock()
	return nil
}

func (s *Session) SetBanner(kind model.BannerKind, text string) {
	s.mu.Lock()
	s.banner = &model.Banner{Kind: kind, Text: text}
	s.mu.Unlock()
}

// TakeBanner returns the pending banner and clears it so it shows once.
func (s *Session) TakeBanner() *model.Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.banner
	s.banner = nil
	return b
}

// BeginSubmit moves the session into the submitting state and returns the
// selection and name to submit. It fails when a submission is already running.
func (s *Session) BeginSubmit() (model.Selection, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return model.Selection{}, "", ErrSubmitInProgress
	}
	s.submitting = true
	return s.selection, s.name, nil
}

func (s *Session) EndSubmit(kind model.BannerKind, text string) {
	s.mu.Lock()
	s.submitting = false
	s.banner = &model.Banner{Kind: kind, Text: text}
	s.mu.Unlock()
}

type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (st *SessionStore) TTL() time.Duration {
	return st.ttl
}

func (st *SessionStore) Acquire() *Session {
	s := &Session{ID: uuid.NewString(), lastSeen: st.now()}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and refreshes its idle timer.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	now := st.now()
	s.mu.Lock()
	expired := now.Sub(s.lastSeen) >= st.ttl
	if !expired {
		s.lastSeen = now
	}
	s.mu.Unlock()
	if expired {
		delete(st.sessions, id)
		return nil, false
	}
	return s, true
}

func (st *SessionStore) Release(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep releases sessions idle for longer than ttl and returns how many
// were dropped.
func (st *SessionStore) Sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	var n int
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := now.Sub(s.lastSeen) >= st.ttl
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
