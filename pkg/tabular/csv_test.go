package tabular

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

func TestWriteTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(w io.Writer) error
		want  string
	}{
		{
			name: "courses",
			write: func(w io.Writer) error {
				return WriteCourses(w, []fixture.Course{{Code: "CourseCode_001", Name: "Course 001", DurationMinutes: 90}})
			},
			want: "CourseCode,CourseName,DurationMinutes\nCourseCode_001,Course 001,90\n",
		},
		{
			name: "students",
			write: func(w io.Writer) error {
				return WriteStudents(w, []fixture.Student{{ID: "Std_ID_0001", Name: "Student 1"}})
			},
			want: "StudentID,StudentName\nStd_ID_0001,Student 1\n",
		},
		{
			name: "classrooms",
			write: func(w io.Writer) error {
				return WriteClassrooms(w, []fixture.Classroom{{ID: "Room_001", Name: "Classroom 1", Capacity: 40}})
			},
			want: "RoomID,RoomName,Capacity\nRoom_001,Classroom 1,40\n",
		},
		{
			name: "attendance",
			write: func(w io.Writer) error {
				return WriteEnrollments(w, []fixture.Enrollment{{StudentID: "Std_ID_0001", CourseCode: "CourseCode_001"}})
			},
			want: "StudentID,CourseCode\nStd_ID_0001,CourseCode_001\n",
		},
		{
			name: "empty set keeps header",
			write: func(w io.Writer) error {
				return WriteEnrollments(w, nil)
			},
			want: "StudentID,CourseCode\n",
		},
		{
			name: "quoted name",
			write: func(w io.Writer) error {
				return WriteStudents(w, []fixture.Student{{ID: "S1", Name: "Doe, Jane"}})
			},
			want: "StudentID,StudentName\nS1,\"Doe, Jane\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := tt.write(&buf); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "students.csv")

	n, err := WriteFile(path, func(w io.Writer) error {
		return WriteStudents(w, []fixture.Student{{ID: "a", Name: "A"}})
	})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if int64(len(data)) != n {
		t.Errorf("WriteFile reported %d bytes, file has %d", n, len(data))
	}
}

func TestWriteFile_FailureLeavesNoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "courses.csv")
	boom := errors.New("boom")

	if _, err := WriteFile(path, func(w io.Writer) error {
		io.WriteString(w, "CourseCode,CourseName,DurationMinutes\n")
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty dir after failed write, found %d entries", len(entries))
	}
}

func TestWriteFile_UnwritableDestination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// A regular file sits where the output directory should be.
	_, err := WriteFile(filepath.Join(blocker, "out.csv"), func(w io.Writer) error { return nil })
	if err == nil {
		t.Fatal("Expected error writing below a regular file")
	}
}
