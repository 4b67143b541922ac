package fixture

import (
	"fmt"
	"math/rand/v2"
)

// TargetPolicy decides how many students each course should receive.
// The returned slice is parallel to courses.
type TargetPolicy interface {
	Targets(r *rand.Rand, courses []Course) ([]int, error)

	// Description returns a human-readable summary of the policy
	Description() string
}

// RangeTargets draws every course's target uniformly from [Min, Max].
type RangeTargets struct {
	Min int
	Max int
}

func (p RangeTargets) Targets(r *rand.Rand, courses []Course) ([]int, error) {
	if p.Min < 0 || p.Min > p.Max {
		return nil, fmt.Errorf("%w: [%d,%d]", ErrInvalidRange, p.Min, p.Max)
	}

	targets := make([]int, len(courses))
	for i := range courses {
		// Max-Min+1 overflows int when the range spans math.MaxInt.
		targets[i] = p.Min + int(r.Uint64N(uint64(p.Max-p.Min)+1))
	}
	return targets, nil
}

func (p RangeTargets) Description() string {
	return fmt.Sprintf("uniform target in [%d,%d] per course", p.Min, p.Max)
}

// TableTargets assigns exact targets by course position.
type TableTargets struct {
	Counts []int
}

func (p TableTargets) Targets(_ *rand.Rand, courses []Course) ([]int, error) {
	if len(p.Counts) != len(courses) {
		return nil, fmt.Errorf("%w: table has %d entries, %d courses", ErrTableLength, len(p.Counts), len(courses))
	}
	for i, c := range p.Counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative target %d at position %d", ErrInvalidRange, c, i)
		}
	}
	return append([]int(nil), p.Counts...), nil
}

func (p TableTargets) Description() string {
	total := 0
	for _, c := range p.Counts {
		total += c
	}
	return fmt.Sprintf("distribution table of %d courses (%d seats)", len(p.Counts), total)
}

// Bucket is a run of courses sharing one exact target.
type Bucket struct {
	Target  int `mapstructure:"target" json:"target"`
	Courses int `mapstructure:"courses" json:"courses"`
}

// DistributionTable expands buckets into a flat per-course table, in order.
// {200,5},{150,10} yields five 200s followed by ten 150s.
func DistributionTable(buckets []Bucket) []int {
	var table []int
	for _, b := range buckets {
		for range b.Courses {
			table = append(table, b.Target)
		}
	}
	return table
}

// ClampTarget caps a target at the pool size. Asking for more students than
// exist is not an error: the course simply gets the whole pool.
func ClampTarget(target, poolSize int) int {
	if target > poolSize {
		return poolSize
	}
	if target < 0 {
		return 0
	}
	return target
}
