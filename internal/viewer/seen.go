package viewer

import "sync"

// SeenSet tracks reaction ids already rendered so a reaction fetched via
// both the live stream and the fallback queue animates once. Cleanup
// keeps the set bounded by the currently-valid id population.
type SeenSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[string]struct{})}
}

// HasSeen reports whether the id was already marked.
func (s *SeenSet) HasSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// MarkSeen records an id.
func (s *SeenSet) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Cleanup drops every marked id that is not in valid, so expired
// reactions stop occupying memory. Ids in valid but never marked are not
// added.
func (s *SeenSet) Cleanup(valid map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.ids {
		if _, ok := valid[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// Len returns the number of marked ids.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
