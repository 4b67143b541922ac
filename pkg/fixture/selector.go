package fixture

import (
	"math/rand/v2"
	"slices"
)

// Selector picks which students attend a course.
type Selector interface {
	// Init is called once per run with the random source and the full pool
	Init(r *rand.Rand, pool []string)

	// Select returns distinct student IDs for the course at ordinal.
	// Implementations clamp target to the pool size.
	Select(ordinal, target int) []string

	// Description returns a human-readable summary of the selection rule
	Description() string
}

// SampleSelector draws each course's students independently, uniformly and
// without replacement from the whole pool.
type SampleSelector struct {
	rand *rand.Rand
	pool []string
}

func (s *SampleSelector) Init(r *rand.Rand, pool []string) {
	s.rand = r
	s.pool = pool
}

func (s *SampleSelector) Select(_ int, target int) []string {
	target = ClampTarget(target, len(s.pool))

	// Partial Fisher-Yates: the first target slots end up a uniform sample.
	scratch := slices.Clone(s.pool)
	for i := range target {
		j := i + s.rand.IntN(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:target:target]
}

func (s *SampleSelector) Description() string {
	return "independent sample without replacement per course"
}

// RotationSelector shuffles the pool once, then gives the course at ordinal i
// the first target IDs of that order rotated left by i.
type RotationSelector struct {
	base []string
}

func (s *RotationSelector) Init(r *rand.Rand, pool []string) {
	s.base = slices.Clone(pool)
	r.Shuffle(len(s.base), func(i, j int) {
		s.base[i], s.base[j] = s.base[j], s.base[i]
	})
}

func (s *RotationSelector) Select(ordinal, target int) []string {
	n := len(s.base)
	target = ClampTarget(target, n)
	if target == 0 {
		return nil
	}

	offset := ordinal % n
	selected := make([]string, target)
	for k := range target {
		selected[k] = s.base[(offset+k)%n]
	}
	return selected
}

func (s *RotationSelector) Description() string {
	return "window over a shared shuffled order, rotated by course position"
}

// BaseOrder exposes the shuffled order chosen by Init.
func (s *RotationSelector) BaseOrder() []string {
	return slices.Clone(s.base)
}
