package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	appAttendance "github.com/campus-hub/campus-hub/internal/application/attendance"
)

// Service renders attendance reports for download. Aggregation is delegated
// to the attendance service; this layer only formats.
type Service struct {
	attendanceSvc *appAttendance.Service
	logger        zerolog.Logger
}

func NewService(attendanceSvc *appAttendance.Service, logger zerolog.Logger) *Service {
	return &Service{
		attendanceSvc: attendanceSvc,
		logger:        logger.With().Str("service", "report").Logger(),
	}
}

// File is a rendered report ready to stream to the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubjectExcel renders the per-subject roster workbook a teacher downloads.
func (s *Service) SubjectExcel(ctx context.Context, teacherUserID, subjectID uuid.UUID) (*File, error) {
	analytics, err := s.attendanceSvc.SubjectAnalytics(ctx, teacherUserID, subjectID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	rows := [][]interface{}{
		{"Attendance Report"},
		{"Subject:", analytics.Subject.Name},
		{"Subject Code:", analytics.Subject.Code},
		{"Generated on:", time.Now().Format(time.RFC1123)},
		{},
		{"Roll Number", "Student Name", "Present", "Absent", "Leave", "Total", "Percentage"},
	}
	for _, st := range analytics.StudentStats {
		rows = append(rows, []interface{}{
			st.Student.RollNumber,
			st.Student.Name,
			st.Stats.Present,
			st.Stats.Absent,
			st.Stats.Leave,
			st.Stats.Total,
			fmt.Sprintf("%.2f%%", st.Percentage),
		})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "A", "B", 22)
	_ = f.SetColWidth(sheet, "C", "G", 12)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &File{
		Name:        fmt.Sprintf("attendance_%s.xlsx", analytics.Subject.Code),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// StudentPDF renders the per-student report a student downloads.
func (s *Service) StudentPDF(ctx context.Context, studentUserID uuid.UUID) (*File, error) {
	overview, err := s.attendanceSvc.StudentDashboard(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Attendance Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Student Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Name: "+overview.Student.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Roll Number: "+overview.Student.RollNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Department: %s (Semester %d)", overview.Student.Department, overview.Student.Semester), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{60, 24, 24, 24, 24, 30}
	headers := []string{"Subject", "Present", "Absent", "Leave", "Total", "Percentage"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, sub := range overview.Subjects {
		cells := []string{
			sub.Subject.Name,
			fmt.Sprintf("%d", sub.Stats.Present),
			fmt.Sprintf("%d", sub.Stats.Absent),
			fmt.Sprintf("%d", sub.Stats.Leave),
			fmt.Sprintf("%d", sub.Stats.Total),
			fmt.Sprintf("%.2f%%", sub.Percentage),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 8, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall Attendance: %.2f%%", overview.OverallPercentage), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &File{
		Name:        fmt.Sprintf("attendance_%s.pdf", overview.Student.RollNumber),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}
