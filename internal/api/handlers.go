package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/appointment-registry/internal/document"
	"github.com/medibook/appointment-registry/internal/observability/metrics"
	"github.com/medibook/appointment-registry/internal/registry"
)

func bookAppointmentHandler(reg *registry.Registry, renderer document.Renderer, m *metrics.BookingMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		start := time.Now()
		appt, err := reg.Book(r.Context(), req.PatientName, req.ContactNumber)
		if err != nil {
			m.ObserveBooking(bookingOutcome(err), 0)
			handleBookError(w, err)
			return
		}
		m.ObserveBooking("booked", time.Since(start).Seconds())

		// Rendering happens after the booking is committed and outside any
		// registry lock. A render failure does not undo the booking.
		docRef := ""
		if renderer != nil {
			docRef, err = renderer.Render(*appt)
			if err != nil {
				log.Printf("render confirmation for %s: %v", appt.ReferenceID, err)
				m.ObserveRender("error")
				docRef = ""
			} else {
				m.ObserveRender("ok")
			}
		}

		resp := BookAppointmentResponse{
			ReferenceID:       appt.ReferenceID,
			Status:            string(appt.Status),
			Message:           "Appointment booked",
			DocumentReference: docRef,
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

func getAppointmentHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := chi.URLParam(r, "referenceID")
		if _, err := registry.ParseReference(ref); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_reference_id", "reference must match APT-XXXX")
			return
		}

		appt, err := reg.Get(r.Context(), ref)
		if err != nil {
			handleLookupError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func listAppointmentsHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := reg.List(r.Context())
		if err != nil {
			handleLookupError(w, err)
			return
		}

		resp := ListAppointmentsResponse{Appointments: make([]AppointmentResponse, 0, len(appts))}
		for _, appt := range appts {
			resp.Appointments = append(resp.Appointments, toAppointmentResponse(appt))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleBookError(w http.ResponseWriter, err error) {
	if ie, ok := registry.AsInvalidInput(err); ok {
		writeError(w, http.StatusBadRequest, "invalid_"+ie.Field, ie.Error())
		return
	}

	switch {
	case errors.Is(err, registry.ErrAllocatorExhausted):
		writeError(w, http.StatusServiceUnavailable, "allocator_exhausted", "reference identifier space is exhausted")
	case errors.Is(err, registry.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", "appointment store is unavailable, please retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", "no appointment with that reference")
	case errors.Is(err, registry.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", "appointment store is unavailable, please retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func bookingOutcome(err error) string {
	if _, ok := registry.AsInvalidInput(err); ok {
		return "invalid_input"
	}
	switch {
	case errors.Is(err, registry.ErrAllocatorExhausted):
		return "allocator_exhausted"
	case errors.Is(err, registry.ErrUnavailable):
		return "storage_unavailable"
	default:
		return "error"
	}
}
