package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

// Sheet names used by WriteWorkbook.
const (
	SheetCourses    = "Courses"
	SheetStudents   = "Students"
	SheetClassrooms = "Classrooms"
	SheetAttendance = "Attendance"
)

// WriteWorkbook writes every record set of ds into one xlsx workbook, one
// sheet per file role with the same headers as the CSV files.
func WriteWorkbook(path string, ds *fixture.Dataset) (int64, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{SheetCourses, CourseHeader, courseRows(ds.Courses)},
		{SheetStudents, StudentHeader, studentRows(ds.Students)},
		{SheetClassrooms, ClassroomHeader, classroomRows(ds.Classrooms)},
		{SheetAttendance, EnrollmentHeader, enrollmentRows(ds.Enrollments)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return 0, fmt.Errorf("failed to rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return 0, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s.name, s.header, s.rows, headerStyle); err != nil {
			return 0, err
		}
	}
	f.SetActiveSheet(0)

	return WriteFile(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func courseRows(courses []fixture.Course) [][]any {
	rows := make([][]any, len(courses))
	for i, c := range courses {
		rows[i] = []any{c.Code, c.Name, c.DurationMinutes}
	}
	return rows
}

func studentRows(students []fixture.Student) [][]any {
	rows := make([][]any, len(students))
	for i, s := range students {
		rows[i] = []any{s.ID, s.Name}
	}
	return rows
}

func classroomRows(rooms []fixture.Classroom) [][]any {
	rows := make([][]any, len(rooms))
	for i, r := range rooms {
		rows[i] = []any{r.ID, r.Name, r.Capacity}
	}
	return rows
}

func enrollmentRows(enrollments []fixture.Enrollment) [][]any {
	rows := make([][]any, len(enrollments))
	for i, e := range enrollments {
		rows[i] = []any{e.StudentID, e.CourseCode}
	}
	return rows
}
