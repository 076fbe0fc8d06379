package document

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medibook/appointment-registry/internal/registry"
)

func sampleAppointment() registry.Appointment {
	return registry.Appointment{
		ReferenceID:   "APT-0001",
		PatientName:   "Asha Rao",
		ContactNumber: "+91 9876543210",
		Status:        registry.StatusConfirmed,
		CreatedAt:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderWritesConfirmationPDF(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir)

	ref, err := r.Render(sampleAppointment())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "APT-0001.pdf"), ref)

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.Contains(t, string(data), "Asha Rao")
	require.Contains(t, string(data), "APT-0001")
	require.Contains(t, string(data), "confirmed")
}

func TestRenderCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docs")
	r := NewPDFRenderer(dir)

	_, err := r.Render(sampleAppointment())
	require.NoError(t, err)
}

func TestExists(t *testing.T) {
	r := NewPDFRenderer(t.TempDir())

	require.False(t, r.Exists("APT-0001"))

	_, err := r.Render(sampleAppointment())
	require.NoError(t, err)
	require.True(t, r.Exists("APT-0001"))
	require.False(t, r.Exists("APT-0002"))
}

func TestEscapePDFString(t *testing.T) {
	require.Equal(t, `Rao \(Asha\)`, escapePDFString("Rao (Asha)"))
	require.Equal(t, `a\\b`, escapePDFString(`a\b`))
}
