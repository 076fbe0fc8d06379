package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/medibook/appointment-registry/internal/registry"
)

// confirmationPDF builds a single page PDF by hand: catalog, page tree, one
// page, the built-in Helvetica font, and an uncompressed text content
// stream. Nothing in the ecosystem this service already depends on renders
// PDFs, and the confirmation layout is a handful of text lines, so the file
// is assembled directly.
func confirmationPDF(appt registry.Appointment) []byte {
	lines := []string{
		"Reference: " + appt.ReferenceID,
		"Patient: " + appt.PatientName,
		"Contact: " + appt.ContactNumber,
		"Status: " + string(appt.Status),
		"Booked at: " + appt.CreatedAt.Format("2 Jan 2006 15:04 MST"),
	}

	var content bytes.Buffer
	content.WriteString("BT\n/F1 18 Tf\n72 720 Td\n(Appointment Confirmation) Tj\n/F1 12 Tf\n0 -36 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("0 -20 Td\n")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", escapePDFString(line))
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return out.Bytes()
}

func escapePDFString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return replacer.Replace(s)
}
