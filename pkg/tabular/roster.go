package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

const utf8BOM = "\ufeff"

// LoadRoster reads students from a .csv or .xlsx file, chosen by extension.
func LoadRoster(path string) ([]fixture.Student, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadStudents(path)
	case ".xlsx":
		return LoadStudentsXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadStudents reads a students CSV written by WriteStudents (or any file with
// the same header). IDs and names are kept verbatim.
func LoadStudents(path string) ([]fixture.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterInput, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count is checked per row below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRosterInput, path, err)
	}
	return parseRoster(records, path)
}

// LoadStudentsXLSX reads a roster from a workbook. The "Students" sheet is
// used when present, otherwise the first sheet.
func LoadStudentsXLSX(path string) ([]fixture.Student, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRosterInput, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if slices.Contains(f.GetSheetList(), SheetStudents) {
		sheet = SheetStudents
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read sheet %q: %w", ErrRosterInput, path, sheet, err)
	}

	// Drop blank rows the way the CSV reader skips blank lines.
	rows = slices.DeleteFunc(rows, func(row []string) bool {
		return strings.TrimSpace(strings.Join(row, "")) == ""
	})
	// GetRows trims trailing empty cells, so an empty name yields a short row.
	for i, row := range rows {
		if len(row) < len(StudentHeader) {
			rows[i] = append(row, make([]string, len(StudentHeader)-len(row))...)
		}
	}
	return parseRoster(rows, path)
}

func parseRoster(records [][]string, source string) ([]fixture.Student, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: file is empty", ErrRosterInput, source)
	}

	header := slices.Clone(records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if !slices.Equal(header, StudentHeader) {
		return nil, fmt.Errorf("%w: %s: header %v, want %v", ErrRosterInput, source, header, StudentHeader)
	}

	students := make([]fixture.Student, 0, len(records)-1)
	for i, rec := range records[1:] {
		row := i + 2
		if len(rec) != len(StudentHeader) {
			return nil, fmt.Errorf("%w: %s: row %d has %d columns, want %d", ErrRosterInput, source, row, len(rec), len(StudentHeader))
		}
		if rec[0] == "" {
			return nil, fmt.Errorf("%w: %s: row %d has an empty StudentID", ErrRosterInput, source, row)
		}
		students = append(students, fixture.Student{ID: rec[0], Name: rec[1]})
	}

	if len(students) == 0 {
		return nil, fmt.Errorf("%w: %s: no students after header", ErrRosterInput, source)
	}
	if err := fixture.CheckRoster(students); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRosterInput, source, err)
	}

	return students, nil
}
