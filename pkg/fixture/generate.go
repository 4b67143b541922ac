package fixture

import (
	"fmt"
	"math/rand/v2"
)

// NewRand returns the seeded source every generation call draws from.
// The same seed always yields the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// GenerateCourses builds n courses with sequential codes. Each duration is an
// independent uniform draw from durations.
func GenerateCourses(r *rand.Rand, n int, format CodeFormat, durations []int) ([]Course, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: courses=%d", ErrInvalidCount, n)
	}
	if len(durations) == 0 {
		return nil, fmt.Errorf("durations: %w", ErrEmptyCandidates)
	}

	courses := make([]Course, n)
	for i := range n {
		courses[i] = Course{
			Code:            format.Code(i + 1),
			Name:            format.Name(i + 1),
			DurationMinutes: durations[r.IntN(len(durations))],
		}
	}
	return courses, nil
}

// GenerateStudents builds a roster of n students with sequential identifiers.
func GenerateStudents(n int, format CodeFormat) ([]Student, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: students=%d", ErrInvalidCount, n)
	}

	students := make([]Student, n)
	for i := range n {
		students[i] = Student{ID: format.Code(i + 1), Name: format.Name(i + 1)}
	}
	return students, nil
}

// GenerateClassrooms builds n classrooms. The room at position i gets
// capacities[i % len(capacities)], so capacities cycle through every candidate.
func GenerateClassrooms(n int, format CodeFormat, capacities []int) ([]Classroom, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: classrooms=%d", ErrInvalidCount, n)
	}
	if len(capacities) == 0 {
		return nil, fmt.Errorf("capacities: %w", ErrEmptyCandidates)
	}

	rooms := make([]Classroom, n)
	for i := range n {
		rooms[i] = Classroom{
			ID:       format.Code(i + 1),
			Name:     format.Name(i + 1),
			Capacity: capacities[i%len(capacities)],
		}
	}
	return rooms, nil
}

// CheckRoster rejects rosters that would break the one-pair-per-student rule.
func CheckRoster(students []Student) error {
	seen := make(map[string]struct{}, len(students))
	for _, s := range students {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateStudent, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
