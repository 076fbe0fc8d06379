package registry

import (
	"context"
	"fmt"
	"sync"
)

// MemStore keeps appointments in process memory. It backs the dev store
// driver and doubles as the test store. Reads take a shared lock so lookups
// and listings do not block each other.
type MemStore struct {
	mu    sync.RWMutex
	byRef map[string]Appointment
	order []string
}

func NewMemStore() *MemStore {
	return &MemStore{byRef: make(map[string]Appointment)}
}

func (s *MemStore) Insert(ctx context.Context, appt Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byRef[appt.ReferenceID]; exists {
		return fmt.Errorf("reference %s already stored", appt.ReferenceID)
	}

	s.byRef[appt.ReferenceID] = appt
	s.order = append(s.order, appt.ReferenceID)
	return nil
}

func (s *MemStore) Get(ctx context.Context, referenceID string) (*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appt, ok := s.byRef[referenceID]
	if !ok {
		return nil, ErrNotFound
	}
	return &appt, nil
}

func (s *MemStore) List(ctx context.Context) ([]Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Appointment, 0, len(s.order))
	for _, ref := range s.order {
		out = append(out, s.byRef[ref])
	}
	return out, nil
}
