// Package tabular serializes fixture record sets to flat files and reads
// rosters back from them.
package tabular

import (
	"encoding/csv"
	"io"
	"strconv"

	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

// Column headers, one per file role.
var (
	CourseHeader     = []string{"CourseCode", "CourseName", "DurationMinutes"}
	StudentHeader    = []string{"StudentID", "StudentName"}
	ClassroomHeader  = []string{"RoomID", "RoomName", "Capacity"}
	EnrollmentHeader = []string{"StudentID", "CourseCode"}
)

// WriteCourses encodes courses as CSV with a header row
func WriteCourses(w io.Writer, courses []fixture.Course) error {
	return writeTable(w, CourseHeader, len(courses), func(i int) []string {
		c := courses[i]
		return []string{c.Code, c.Name, strconv.Itoa(c.DurationMinutes)}
	})
}

// WriteStudents encodes a roster as CSV with a header row
func WriteStudents(w io.Writer, students []fixture.Student) error {
	return writeTable(w, StudentHeader, len(students), func(i int) []string {
		return []string{students[i].ID, students[i].Name}
	})
}

// WriteClassrooms encodes classrooms as CSV with a header row
func WriteClassrooms(w io.Writer, rooms []fixture.Classroom) error {
	return writeTable(w, ClassroomHeader, len(rooms), func(i int) []string {
		r := rooms[i]
		return []string{r.ID, r.Name, strconv.Itoa(r.Capacity)}
	})
}

// WriteEnrollments encodes attendance pairs as CSV with a header row
func WriteEnrollments(w io.Writer, enrollments []fixture.Enrollment) error {
	return writeTable(w, EnrollmentHeader, len(enrollments), func(i int) []string {
		return []string{enrollments[i].StudentID, enrollments[i].CourseCode}
	})
}

func writeTable(w io.Writer, header []string, n int, row func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range n {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
