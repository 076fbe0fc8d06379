package registry

import "time"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	// StatusCancelled is reserved for a future cancellation flow; no
	// operation transitions an appointment into it yet.
	StatusCancelled Status = "cancelled"
)

// Appointment is one booked slot. ReferenceID and CreatedAt are set once at
// booking time and never change afterwards.
type Appointment struct {
	ReferenceID   string    `json:"reference_id"`
	PatientName   string    `json:"patient_name"`
	ContactNumber string    `json:"contact_number"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
