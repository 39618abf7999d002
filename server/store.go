package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vitalflux/vitalflux/widget"
)

// StoredWidget is a dashboard widget created through the chat interface.
// Config is immutable once stored; Color is the styling overlay applied at
// binding time and may change independently.
type StoredWidget struct {
	ID        string        `json:"id"`
	Config    widget.Config `json:"config"`
	Color     string        `json:"color,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Store keeps widgets and chat-session state in memory. Widgets are
// independent: no bindings or other derived state is cached here.
type Store struct {
	mu       sync.Mutex
	widgets  map[string]StoredWidget
	order    []string
	inFlight map[string]bool // session id → generation outstanding
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		widgets:  make(map[string]StoredWidget),
		inFlight: make(map[string]bool),
	}
}

// Add stores a new widget and assigns it an ID.
func (s *Store) Add(cfg widget.Config) StoredWidget {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := StoredWidget{
		ID:        uuid.NewString(),
		Config:    cfg,
		CreatedAt: time.Now().UTC(),
	}
	s.widgets[w.ID] = w
	s.order = append(s.order, w.ID)
	return w
}

// Get returns a widget by ID.
func (s *Store) Get(id string) (StoredWidget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widgets[id]
	return w, ok
}

// List returns widgets in creation order.
func (s *Store) List() []StoredWidget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredWidget, 0, len(s.order))
	for _, id := range s.order {
		if w, ok := s.widgets[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// Delete removes a widget. Returns false if it doesn't exist.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[id]; !ok {
		return false
	}
	delete(s.widgets, id)
	for i, wid := range s.order {
		if wid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// SetColor updates a widget's styling overlay. The stored config itself is
// never touched.
func (s *Store) SetColor(id, color string) (StoredWidget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widgets[id]
	if !ok {
		return StoredWidget{}, false
	}
	w.Color = color
	s.widgets[id] = w
	return w, true
}

// BeginGeneration marks a chat session as having a generation in flight.
// Returns false if one is already outstanding — a session gets one
// generation at a time, a second submission is simply not permitted.
func (s *Store) BeginGeneration(session string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[session] {
		return false
	}
	s.inFlight[session] = true
	return true
}

// EndGeneration clears the in-flight mark for a session.
func (s *Store) EndGeneration(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, session)
}
