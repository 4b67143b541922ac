// Package archive records generation runs so later runs can reuse a roster.
package archive

import (
	"errors"
	"slices"
	"strings"
	"time"

	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

var (
	runsBucket    = []byte("runs")
	rostersBucket = []byte("rosters")
)

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// File is one output file written by a run.
type File struct {
	Role  string `json:"role"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// Run describes one completed generation.
type Run struct {
	CreatedAt    time.Time     `json:"created_at"`
	ID           string        `json:"id"`
	Strategy     string        `json:"strategy"`
	RosterSource string        `json:"roster_source"` // "generated", a file path, or "run:<id>"
	Files        []File        `json:"files"`
	Stats        fixture.Stats `json:"stats"`
	Seed         uint64        `json:"seed"`
	Courses      int           `json:"courses"`
	Students     int           `json:"students"`
	Classrooms   int           `json:"classrooms"`
	Enrollments  int           `json:"enrollments"`
}

// Store persists runs and the roster each run used.
type Store interface {
	SaveRun(run *Run, roster []fixture.Student) error
	GetRun(id string) (*Run, error)
	ListRuns() ([]*Run, error)
	LoadRoster(id string) ([]fixture.Student, error)
	DeleteRun(id string) error

	Close() error
}

// sortNewestFirst orders runs by creation time, newest first, then by ID.
func sortNewestFirst(runs []*Run) {
	slices.SortFunc(runs, func(a, b *Run) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
