package filters

import "sync"

// Store is the owned state container for filter criteria. Mutations go
// through Apply so every change produces a fresh snapshot and notifies
// subscribers; there is no ambient global state.
type Store struct {
	mu       sync.Mutex
	criteria Criteria
	nextSub  int
	subs     map[int]func(Criteria)
}

// NewStore builds a store seeded with default criteria.
func NewStore() *Store {
	return &Store{
		criteria: Default(),
		subs:     map[int]func(Criteria){},
	}
}

// Current returns a snapshot of the criteria.
func (s *Store) Current() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.clone()
}

// Apply runs a reducer against the current state and notifies subscribers
// when the result differs. It returns the new snapshot.
func (s *Store) Apply(reduce func(Criteria) Criteria) Criteria {
	s.mu.Lock()
	prev := s.criteria
	next := reduce(prev.clone())
	s.criteria = next
	subs := make([]func(Criteria), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if !next.Equal(prev) {
		for _, fn := range subs {
			fn(next.clone())
		}
	}
	return next.clone()
}

// Subscribe registers a callback invoked after every effective change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Criteria)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
