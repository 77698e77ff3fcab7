// Package export renders appointments as printable documents.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// AppointmentPDF renders a one-page summary of ap. Patient and doctor
// should be loaded; missing ones are printed as unknown.
func AppointmentPDF(ap *models.Appointment, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Appointment "+ap.ID, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Medical Appointment Details", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	patient := "unknown"
	if ap.Patient != nil {
		patient = fmt.Sprintf("%s <%s>", ap.Patient.Name, ap.Patient.Email)
	}
	doctor := "unknown"
	if ap.Doctor != nil {
		doctor = fmt.Sprintf("Dr. %s (%s)", ap.Doctor.Name, ap.Doctor.Specialty)
	}

	rows := [][2]string{
		{"Appointment ID", ap.ID},
		{"Patient", patient},
		{"Doctor", doctor},
		{"Date", ap.Date.In(loc).Format("Monday, January 2, 2006 15:04 MST")},
		{"Status", ap.Status},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(45, 8, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Reason:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 7, tr(ap.Reason), "", "L", false)

	if ap.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Notes:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 7, tr(ap.Notes), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().In(loc).Format(time.RFC1123), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func Filename(ap *models.Appointment) string {
	return fmt.Sprintf("appointment-%s.pdf", ap.ID)
}
