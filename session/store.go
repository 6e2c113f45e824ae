package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store guarda las sesiones vivas en memoria.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewStore(ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Create inicializa y registra una sesión nueva.
func (st *Store) Create(persistedToken string) *Session {
	s := Initialize(persistedToken, st.log)
	s.CreatedAt = st.now()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get busca una sesión vigente.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if st.expired(s) {
		delete(st.sessions, id)
		s.Teardown()
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete cierra y olvida la sesión.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.Teardown()
	}
}

// Sweep elimina las sesiones vencidas y devuelve cuántas borró.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			s.Teardown()
			n++
		}
	}
	if n > 0 {
		st.log.Debug().Int("sessions", n).Msg("swept expired sessions")
	}
	return n
}

func (st *Store) expired(s *Session) bool {
	return st.ttl > 0 && st.now().Sub(s.CreatedAt) > st.ttl
}

// Len devuelve la cantidad de sesiones registradas.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
