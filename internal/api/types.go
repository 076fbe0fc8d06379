package api

import (
	"time"

	"github.com/medibook/appointment-registry/internal/registry"
)

type BookAppointmentRequest struct {
	PatientName   string `json:"patient_name"`
	ContactNumber string `json:"contact_number"`
}

type BookAppointmentResponse struct {
	ReferenceID       string `json:"reference_id"`
	Status            string `json:"status"`
	Message           string `json:"message"`
	DocumentReference string `json:"document_reference,omitempty"`
}

type AppointmentResponse struct {
	ReferenceID   string    `json:"reference_id"`
	PatientName   string    `json:"patient_name"`
	ContactNumber string    `json:"contact_number"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toAppointmentResponse(appt registry.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ReferenceID:   appt.ReferenceID,
		PatientName:   appt.PatientName,
		ContactNumber: appt.ContactNumber,
		Status:        string(appt.Status),
		CreatedAt:     appt.CreatedAt,
	}
}

type ListAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
