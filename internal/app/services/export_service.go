package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okalra/studentms/internal/app/models"
	"github.com/okalra/studentms/internal/pkg/logger"
)

// exportHeaders is the column layout shared by every export format
var exportHeaders = []string{"Student ID", "First Name", "Last Name", "Email", "Department", "Courses", "Status"}

// StudentExportService renders a finalized, already filtered and sorted
// student set into a tabular document
type StudentExportService interface {
	ExportCSV(w io.Writer, students []*models.Student) error
	ExportExcel(w io.Writer, students []*models.Student) error
}

// studentExportServiceImpl implements StudentExportService
type studentExportServiceImpl struct{}

// NewStudentExportService creates a new StudentExportService
func NewStudentExportService() StudentExportService {
	return &studentExportServiceImpl{}
}

// ExportCSV writes the students as CSV with a header row
func (s *studentExportServiceImpl) ExportCSV(w io.Writer, students []*models.Student) error {
	logger.Info().Int("students", len(students)).Msg("Starting CSV export")

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, student := range students {
		if err := writer.Write(exportRow(student)); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportExcel writes the students as an XLSX workbook with a bold header row
func (s *studentExportServiceImpl) ExportExcel(w io.Writer, students []*models.Student) error {
	logger.Info().Int("students", len(students)).Msg("Starting Excel export")

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for rowIdx, student := range students {
		for colIdx, value := range exportRow(student) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("error writing row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// exportRow flattens a resolved student into the shared column layout
func exportRow(student *models.Student) []string {
	departmentName := ""
	if student.Department != nil {
		departmentName = student.Department.Name
	}

	courseNames := make([]string, 0, len(student.Courses))
	for _, course := range student.Courses {
		courseNames = append(courseNames, course.Name)
	}

	status := "Inactive"
	if student.IsActive {
		status = "Active"
	}

	return []string{
		student.StudentID,
		student.FirstName,
		student.LastName,
		student.Email,
		departmentName,
		strings.Join(courseNames, "; "),
		status,
	}
}
