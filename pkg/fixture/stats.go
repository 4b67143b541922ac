package fixture

// Stats summarizes per-course enrollment counts.
type Stats struct {
	Courses int     `json:"courses"`
	Total   int     `json:"total"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Mean    float64 `json:"mean"`
	Clamped int     `json:"clamped"`
}

// Summarize computes Stats over assigned counts.
func Summarize(allocs []Allocation) Stats {
	st := Stats{Courses: len(allocs)}
	if len(allocs) == 0 {
		return st
	}

	st.Min = allocs[0].Assigned
	st.Max = allocs[0].Assigned
	for _, a := range allocs {
		st.Total += a.Assigned
		st.Min = min(st.Min, a.Assigned)
		st.Max = max(st.Max, a.Assigned)
		if a.Clamped() {
			st.Clamped++
		}
	}
	st.Mean = float64(st.Total) / float64(len(allocs))
	return st
}
