package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Registry owns the appointment collection. It validates bookings, asks the
// allocator for the next reference, and is the sole writer to the store.
type Registry struct {
	store  Store
	alloc  Allocator
	locker Locker
}

func NewRegistry(store Store, alloc Allocator, locker Locker) *Registry {
	return &Registry{
		store:  store,
		alloc:  alloc,
		locker: locker,
	}
}

// Book validates the request, then allocates a reference and inserts the
// record inside one booking lock section. Validation failures happen before
// the lock, so rejected requests never consume an identifier. A failed
// insert after allocation leaves a gap in the sequence, which is acceptable;
// two bookings sharing a reference is not.
func (r *Registry) Book(ctx context.Context, patientName, contactNumber string) (*Appointment, error) {
	if err := validatePatientName(patientName); err != nil {
		return nil, err
	}
	if err := validateContactNumber(contactNumber); err != nil {
		return nil, err
	}

	var booked *Appointment

	err := r.locker.WithBookingLock(ctx, func(lockCtx context.Context) error {
		ref, err := r.alloc.Next(lockCtx)
		if err != nil {
			return fmt.Errorf("allocate reference: %w", err)
		}

		appt := Appointment{
			ReferenceID:   ref,
			PatientName:   strings.TrimSpace(patientName),
			ContactNumber: contactNumber,
			Status:        StatusConfirmed,
			CreatedAt:     time.Now().UTC(),
		}

		if err := r.store.Insert(lockCtx, appt); err != nil {
			return fmt.Errorf("store appointment: %w", err)
		}

		booked = &appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booked, nil
}

// Get looks up an appointment by exact reference match.
func (r *Registry) Get(ctx context.Context, referenceID string) (*Appointment, error) {
	appt, err := r.store.Get(ctx, referenceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appt, nil
}

// List returns every stored appointment in booking order.
func (r *Registry) List(ctx context.Context) ([]Appointment, error) {
	appts, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}
