package decision

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Notification describes one terminal decision, delivered synchronously to
// registered listeners. Listeners typically feed impression events or debug
// tooling; slow listeners slow decisions down, so hand off heavy work.
type Notification struct {
	ID         uuid.UUID
	Timestamp  time.Time
	Decision   Decision
	Attributes map[string]any
}

// OnDecision registers a listener and returns its id for later removal.
// Nil listeners are ignored and get id 0.
func (s *Service) OnDecision(fn func(Notification)) int {
	if fn == nil {
		return 0
	}

	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.nextListener++
	id := s.nextListener
	s.listeners[id] = fn
	return id
}

// RemoveListener unregisters a listener. Unknown ids are ignored.
func (s *Service) RemoveListener(id int) {
	s.listenerMu.Lock()
	delete(s.listeners, id)
	s.listenerMu.Unlock()
}

func (s *Service) notify(d Decision, attrs map[string]any) {
	s.listenerMu.RLock()
	if len(s.listeners) == 0 {
		s.listenerMu.RUnlock()
		return
	}
	fns := make([]func(Notification), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.RUnlock()

	n := Notification{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Decision:  d,
	}
	if len(attrs) > 0 {
		// Copy so listeners cannot observe later mutations by the caller.
		n.Attributes = maps.Clone(attrs)
	}
	for _, fn := range fns {
		fn(n)
	}
}
