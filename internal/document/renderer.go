package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/medibook/appointment-registry/internal/registry"
)

// Renderer turns a booked appointment into a confirmation document and
// returns an opaque reference to it. The registry never interprets the
// reference; it is handed back to the caller as-is.
type Renderer interface {
	Render(appt registry.Appointment) (string, error)
}

// PDFRenderer writes one confirmation PDF per appointment under dir, named
// by reference identifier.
type PDFRenderer struct {
	dir string
}

func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{dir: dir}
}

func (r *PDFRenderer) Render(appt registry.Appointment) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create document dir: %w", err)
	}

	path := r.path(appt.ReferenceID)
	if err := os.WriteFile(path, confirmationPDF(appt), 0o644); err != nil {
		return "", fmt.Errorf("write confirmation document: %w", err)
	}

	return path, nil
}

// Exists reports whether a confirmation document is already on disk for the
// given reference. The render worker uses this to find backfill candidates.
func (r *PDFRenderer) Exists(referenceID string) bool {
	_, err := os.Stat(r.path(referenceID))
	return err == nil
}

func (r *PDFRenderer) path(referenceID string) string {
	return filepath.Join(r.dir, referenceID+".pdf")
}
