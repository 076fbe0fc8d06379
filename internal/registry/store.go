package registry

import (
	"context"
	"sync"
)

// Store persists appointments keyed by reference identifier.
type Store interface {
	// Insert stores a fully validated appointment. The reference must not
	// already be present.
	Insert(ctx context.Context, appt Appointment) error

	// Get looks up one appointment by exact reference match. Returns
	// ErrNotFound when no appointment has that identifier.
	Get(ctx context.Context, referenceID string) (*Appointment, error)

	// List returns all appointments in insertion order, which for
	// monotonically allocated references is ascending reference order.
	List(ctx context.Context) ([]Appointment, error)
}

// Locker serializes the allocate-and-insert critical section of Book so two
// concurrent bookings can never race between taking a reference and storing
// the record.
type Locker interface {
	WithBookingLock(ctx context.Context, fn func(ctx context.Context) error) error
}

// MutexLocker guards bookings within a single process. Deployments running
// several instances against one store use the Redis locker instead.
type MutexLocker struct {
	mu sync.Mutex
}

func NewMutexLocker() *MutexLocker {
	return &MutexLocker{}
}

func (l *MutexLocker) WithBookingLock(ctx context.Context, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}
