package fixture

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Strategy pairs a target policy with a selector. Serialization never looks
// inside a strategy, so either half can be swapped freely.
type Strategy struct {
	Name     string
	Targets  TargetPolicy
	Selector Selector

	// Shuffle reorders the final pair list so it carries no trace of course order
	Shuffle bool
}

// Description returns a one-line summary of the strategy
func (s Strategy) Description() string {
	return fmt.Sprintf("%s: %s; %s", s.Name, s.Targets.Description(), s.Selector.Description())
}

// Result is the output of GenerateEnrollments.
type Result struct {
	Enrollments []Enrollment
	Allocations []Allocation
}

// GenerateEnrollments assigns students to every course according to strategy.
// Each course receives exactly its clamped target of distinct students.
func GenerateEnrollments(r *rand.Rand, courses []Course, students []Student, strategy Strategy) (Result, error) {
	if strategy.Targets == nil || strategy.Selector == nil {
		return Result{}, fmt.Errorf("%w: %q is incomplete", ErrUnknownStrategy, strategy.Name)
	}

	targets, err := strategy.Targets.Targets(r, courses)
	if err != nil {
		return Result{}, err
	}
	if len(targets) != len(courses) {
		return Result{}, fmt.Errorf("%w: policy returned %d targets for %d courses", ErrTableLength, len(targets), len(courses))
	}

	pool := StudentIDs(students)
	strategy.Selector.Init(r, pool)

	res := Result{Allocations: make([]Allocation, len(courses))}
	for i, course := range courses {
		selected := strategy.Selector.Select(i, targets[i])
		for _, id := range selected {
			res.Enrollments = append(res.Enrollments, Enrollment{StudentID: id, CourseCode: course.Code})
		}
		res.Allocations[i] = Allocation{
			CourseCode: course.Code,
			Requested:  targets[i],
			Assigned:   len(selected),
		}
	}

	if strategy.Shuffle {
		r.Shuffle(len(res.Enrollments), func(i, j int) {
			res.Enrollments[i], res.Enrollments[j] = res.Enrollments[j], res.Enrollments[i]
		})
	}

	return res, nil
}

// Options carries the parameters a registered strategy may need.
type Options struct {
	Min   int
	Max   int
	Table []int
}

// Registry maps strategy names to factories.
// Factories build a fresh Selector each time since selectors hold per-run state.
var Registry = map[string]func(Options) Strategy{
	"random": func(o Options) Strategy {
		return Strategy{
			Name:     "random",
			Targets:  RangeTargets{Min: o.Min, Max: o.Max},
			Selector: &SampleSelector{},
			Shuffle:  true,
		}
	},
	"rotated": func(o Options) Strategy {
		return Strategy{
			Name:     "rotated",
			Targets:  TableTargets{Counts: o.Table},
			Selector: &RotationSelector{},
		}
	},
}

// NewStrategy returns a registered strategy by name
func NewStrategy(name string, opts Options) (Strategy, error) {
	factory, exists := Registry[name]
	if !exists {
		return Strategy{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return factory(opts), nil
}

// ListStrategies returns all registered strategy names, sorted
func ListStrategies() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
