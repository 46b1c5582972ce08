package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campusops/absence-api/internal/models"
	appErrors "github.com/campusops/absence-api/pkg/errors"
	"github.com/campusops/absence-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var attendanceHeaders = []string{"Name", "Student Number", "Date", "Session Type", "Course Material", "Justified"}

// ExportService renders attendance rows into downloadable files.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// RenderAttendance renders the rows in the requested format, returning the
// payload and its content type.
func (s *ExportService) RenderAttendance(rows []models.AttendanceRow, format, title string) ([]byte, string, error) {
	dataset := attendanceDataset(rows)

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func attendanceDataset(rows []models.AttendanceRow) export.Dataset {
	dataset := export.Dataset{Headers: attendanceHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		date := ""
		if row.Date != nil {
			date = row.Date.Format("2006-01-02 15:04")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Name":            row.Name,
			"Student Number":  row.StudentNumber,
			"Date":            date,
			"Session Type":    row.SessionType,
			"Course Material": row.CourseMaterial,
			"Justified":       strconv.FormatBool(row.Justified),
		})
	}
	return dataset
}
