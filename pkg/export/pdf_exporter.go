package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets and admission slips.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Slip carries the fields printed on an admission slip.
type Slip struct {
	RegistrationCode string
	FullName         string
	Gender           string
	Level            string
	GroupNumber      string
	SlotDate         string
	SlotStart        string
	SlotEnd          string
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSlip produces the single-page admission slip handed to a student at
// the assessment venue.
func (e *PDFExporter) RenderSlip(slip Slip) ([]byte, error) {
	if slip.RegistrationCode == "" {
		return nil, fmt.Errorf("slip requires a registration code")
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "AL-IBAANAH ARABIC CENTER", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Assessment Admission Slip", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, slip.RegistrationCode, "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Full Name", slip.FullName},
		{"Gender", slip.Gender},
		{"Arabic Level", slip.Level},
		{"Group", slip.GroupNumber},
		{"Date", slip.SlotDate},
		{"Time", fmt.Sprintf("%s - %s", slip.SlotStart, slip.SlotEnd)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 8, row[0], "B", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, row[1], "B", 1, "", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 5, "Present this slip together with a valid ID at the front desk. Arrive 15 minutes before your slot.", "", "C", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render slip: %w", err)
	}
	return buf.Bytes(), nil
}
