package fixture

import (
	"errors"
	"slices"
	"testing"
)

var courseFormat = CodeFormat{Prefix: "CourseCode_", Width: 3, NamePrefix: "Course ", PadName: true}

func TestCodeFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   CodeFormat
		index    int
		wantCode string
		wantName string
	}{
		{
			name:     "padded name",
			format:   courseFormat,
			index:    7,
			wantCode: "CourseCode_007",
			wantName: "Course 007",
		},
		{
			name:     "unpadded name",
			format:   CodeFormat{Prefix: "Std_ID_", Width: 4, NamePrefix: "Student "},
			index:    42,
			wantCode: "Std_ID_0042",
			wantName: "Student 42",
		},
		{
			name:     "index wider than width",
			format:   CodeFormat{Prefix: "R", Width: 3, NamePrefix: "Room ", PadName: true},
			index:    1234,
			wantCode: "R1234",
			wantName: "Room 1234",
		},
		{
			name:     "no padding",
			format:   CodeFormat{Prefix: "X"},
			index:    5,
			wantCode: "X5",
			wantName: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.format.Code(tt.index); got != tt.wantCode {
				t.Errorf("Code(%d) = %q, want %q", tt.index, got, tt.wantCode)
			}
			if got := tt.format.Name(tt.index); got != tt.wantName {
				t.Errorf("Name(%d) = %q, want %q", tt.index, got, tt.wantName)
			}
		})
	}
}

func TestGenerateCourses(t *testing.T) {
	t.Parallel()

	durations := []int{60, 90, 120, 150}
	courses, err := GenerateCourses(NewRand(42), 30, courseFormat, durations)
	if err != nil {
		t.Fatalf("GenerateCourses failed: %v", err)
	}

	if len(courses) != 30 {
		t.Fatalf("Got %d courses, want 30", len(courses))
	}

	seen := make(map[string]bool)
	for _, c := range courses {
		if seen[c.Code] {
			t.Errorf("Duplicate course code %s", c.Code)
		}
		seen[c.Code] = true

		if !slices.Contains(durations, c.DurationMinutes) {
			t.Errorf("Course %s has duration %d outside %v", c.Code, c.DurationMinutes, durations)
		}
	}

	if courses[0].Code != "CourseCode_001" || courses[29].Code != "CourseCode_030" {
		t.Errorf("Unexpected code range %s..%s", courses[0].Code, courses[29].Code)
	}
}

func TestGenerateCourses_Deterministic(t *testing.T) {
	t.Parallel()

	a, _ := GenerateCourses(NewRand(7), 50, courseFormat, []int{90, 120, 150})
	b, _ := GenerateCourses(NewRand(7), 50, courseFormat, []int{90, 120, 150})

	if !slices.Equal(a, b) {
		t.Error("Same seed produced different courses")
	}
}

func TestGenerateCourses_Errors(t *testing.T) {
	t.Parallel()

	if _, err := GenerateCourses(NewRand(1), 3, courseFormat, nil); !errors.Is(err, ErrEmptyCandidates) {
		t.Errorf("Expected ErrEmptyCandidates, got %v", err)
	}
	if _, err := GenerateCourses(NewRand(1), -1, courseFormat, []int{60}); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
}

func TestGenerateStudents(t *testing.T) {
	t.Parallel()

	students, err := GenerateStudents(400, CodeFormat{Prefix: "Std_ID_", Width: 4, NamePrefix: "Student "})
	if err != nil {
		t.Fatalf("GenerateStudents failed: %v", err)
	}

	if len(students) != 400 {
		t.Fatalf("Got %d students, want 400", len(students))
	}
	if students[0] != (Student{ID: "Std_ID_0001", Name: "Student 1"}) {
		t.Errorf("First student = %+v", students[0])
	}
	if err := CheckRoster(students); err != nil {
		t.Errorf("Generated roster has duplicates: %v", err)
	}
}

func TestGenerateClassrooms_CyclicCapacity(t *testing.T) {
	t.Parallel()

	capacities := []int{40, 50, 60, 80, 100, 120, 150, 200}
	rooms, err := GenerateClassrooms(15, CodeFormat{Prefix: "Room_", Width: 3, NamePrefix: "Classroom "}, capacities)
	if err != nil {
		t.Fatalf("GenerateClassrooms failed: %v", err)
	}

	if len(rooms) != 15 {
		t.Fatalf("Got %d rooms, want 15", len(rooms))
	}
	for i, room := range rooms {
		if want := capacities[i%len(capacities)]; room.Capacity != want {
			t.Errorf("Room %d capacity = %d, want %d", i, room.Capacity, want)
		}
	}

	if _, err := GenerateClassrooms(3, CodeFormat{}, nil); !errors.Is(err, ErrEmptyCandidates) {
		t.Errorf("Expected ErrEmptyCandidates, got %v", err)
	}
}

func TestCheckRoster_Duplicate(t *testing.T) {
	t.Parallel()

	roster := []Student{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	if err := CheckRoster(roster); !errors.Is(err, ErrDuplicateStudent) {
		t.Errorf("Expected ErrDuplicateStudent, got %v", err)
	}
}
