package fixture

// Course is a single catalog entry.
type Course struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Student is a roster entry.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Classroom is a room with a seat capacity.
type Classroom struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// Enrollment asserts that a student attends a course.
type Enrollment struct {
	StudentID  string `json:"student_id"`
	CourseCode string `json:"course_code"`
}

// Allocation records how many students a course asked for and how many it got.
// Assigned is smaller than Requested only when the pool was too small.
type Allocation struct {
	CourseCode string `json:"course_code"`
	Requested  int    `json:"requested"`
	Assigned   int    `json:"assigned"`
}

// Clamped reports whether the target was cut down to the pool size.
func (a Allocation) Clamped() bool {
	return a.Assigned < a.Requested
}

// Dataset is everything produced by one generation run.
type Dataset struct {
	Courses     []Course
	Students    []Student
	Classrooms  []Classroom
	Enrollments []Enrollment
	Allocations []Allocation
}

// StudentIDs returns the roster identifiers in roster order.
func StudentIDs(students []Student) []string {
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return ids
}
