package service

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/sheriffsaka/alibaanah-v1/internal/models"
	appErrors "github.com/sheriffsaka/alibaanah-v1/pkg/errors"
	"github.com/sheriffsaka/alibaanah-v1/pkg/export"
)

type exportLedger interface {
	Students(gender *models.Gender) []models.Student
	StudentByCode(code string) (models.Student, error)
	SlotByID(id string) (models.Slot, error)
}

// ExportService renders the student roster as CSV and admission slips as PDF.
type ExportService struct {
	ledger exportLedger
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(ledger exportLedger, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		ledger: ledger,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// RosterCSV renders all students, optionally scoped to one gender, as a CSV
// document.
func (s *ExportService) RosterCSV(gender *models.Gender) ([]byte, error) {
	students := s.ledger.Students(gender)

	dataset := export.Dataset{
		Headers: []string{
			"Registration Code", "Full Name", "Phone", "Email", "Age",
			"Gender", "Arabic Level", "Group", "Slot ID", "Checked In",
		},
		Rows: make([]map[string]string, 0, len(students)),
	}
	for _, st := range students {
		checkedIn := "No"
		if st.CheckedIn {
			checkedIn = "Yes"
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Registration Code": st.RegistrationCode,
			"Full Name":         st.FullName,
			"Phone":             st.PhoneNumber,
			"Email":             st.Email,
			"Age":               strconv.Itoa(st.Age),
			"Gender":            string(st.Gender),
			"Arabic Level":      string(st.ArabicLevel),
			"Group":             st.GroupNumber,
			"Slot ID":           st.SlotID,
			"Checked In":        checkedIn,
		})
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster CSV")
	}
	s.logger.Info("roster exported", zap.Int("students", len(students)))
	return payload, nil
}

// SlipPDF renders the admission slip for one registration code.
func (s *ExportService) SlipPDF(code string) ([]byte, error) {
	student, err := s.ledger.StudentByCode(code)
	if err != nil {
		return nil, err
	}
	slot, err := s.ledger.SlotByID(student.SlotID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration references an unknown slot")
	}

	payload, err := s.pdf.RenderSlip(export.Slip{
		RegistrationCode: student.RegistrationCode,
		FullName:         student.FullName,
		Gender:           string(student.Gender),
		Level:            string(student.ArabicLevel),
		GroupNumber:      student.GroupNumber,
		SlotDate:         slot.Date,
		SlotStart:        slot.StartTime,
		SlotEnd:          slot.EndTime,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render admission slip")
	}
	return payload, nil
}
