// Package runner wires config, generation, serialization and the archive
// into a single fixture run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkg.jsn.cam/fixturegen/internal/archive"
	"pkg.jsn.cam/fixturegen/internal/config"
	"pkg.jsn.cam/fixturegen/pkg/fixture"
	"pkg.jsn.cam/fixturegen/pkg/tabular"
)

// File roles, also used as archive.File.Role
const (
	RoleCourses    = "courses"
	RoleStudents   = "students"
	RoleClassrooms = "classrooms"
	RoleAttendance = "attendance"
	RoleWorkbook   = "workbook"
)

const rosterGenerated = "generated"

// ErrArchiveRequired is returned when a roster is requested from a run but no archive is open
var ErrArchiveRequired = errors.New("archive required to load roster from a run")

// Options carries the collaborators of a run
type Options struct {
	// Store archives the run and serves students.roster_run; nil disables both
	Store archive.Store

	// OnFile is called after each output file lands on disk
	OnFile func(archive.File)

	// Now stamps the archived run; defaults to time.Now
	Now func() time.Time
}

// Summary describes a finished run
type Summary struct {
	RunID        string
	Seed         uint64
	Strategy     string
	RosterSource string
	Courses      int
	Students     int
	Classrooms   int
	Enrollments  int
	Stats        fixture.Stats
	Clamped      []fixture.Allocation
	Files        []archive.File
}

// Run executes one generation: resolve the roster, generate every record set,
// write the files and archive the result.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*Summary, error) {
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	logger.Info("Starting fixture run",
		zap.Uint64("seed", cfg.Seed),
		zap.String("strategy", cfg.Enrollment.Strategy),
		zap.String("output_dir", cfg.Output.Dir),
	)

	ds, source, err := Generate(cfg, opts.Store)
	if err != nil {
		return nil, err
	}

	for _, a := range ds.Allocations {
		if a.Clamped() {
			logger.Warn("Course target clamped to roster size",
				zap.String("course", a.CourseCode),
				zap.Int("requested", a.Requested),
				zap.Int("assigned", a.Assigned),
			)
		}
	}

	stats := fixture.Summarize(ds.Allocations)
	logger.Info("Generated dataset",
		zap.String("roster", source),
		zap.Int("courses", len(ds.Courses)),
		zap.Int("students", len(ds.Students)),
		zap.Int("classrooms", len(ds.Classrooms)),
		zap.Int("enrollments", len(ds.Enrollments)),
		zap.Int("min_per_course", stats.Min),
		zap.Int("max_per_course", stats.Max),
		zap.Float64("avg_per_course", stats.Mean),
	)

	files, err := Write(ctx, cfg, ds, logger, opts.OnFile)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:        runID,
		Seed:         cfg.Seed,
		Strategy:     cfg.Enrollment.Strategy,
		RosterSource: source,
		Courses:      len(ds.Courses),
		Students:     len(ds.Students),
		Classrooms:   len(ds.Classrooms),
		Enrollments:  len(ds.Enrollments),
		Stats:        stats,
		Files:        files,
	}
	for _, a := range ds.Allocations {
		if a.Clamped() {
			summary.Clamped = append(summary.Clamped, a)
		}
	}

	if opts.Store != nil {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		if err := opts.Store.SaveRun(summary.archiveRun(now()), ds.Students); err != nil {
			return nil, fmt.Errorf("failed to archive run: %w", err)
		}
		logger.Info("Archived run")
	}

	return summary, nil
}

func (s *Summary) archiveRun(at time.Time) *archive.Run {
	return &archive.Run{
		ID:           s.RunID,
		CreatedAt:    at,
		Seed:         s.Seed,
		Strategy:     s.Strategy,
		RosterSource: s.RosterSource,
		Courses:      s.Courses,
		Students:     s.Students,
		Classrooms:   s.Classrooms,
		Enrollments:  s.Enrollments,
		Stats:        s.Stats,
		Files:        s.Files,
	}
}

// Generate builds the dataset in memory. It reads any external roster fully
// before returning, so no file is written when the roster is bad.
// The second return value names where the roster came from.
func Generate(cfg *config.Config, store archive.Store) (*fixture.Dataset, string, error) {
	r := fixture.NewRand(cfg.Seed)

	students, source, err := resolveRoster(cfg, store)
	if err != nil {
		return nil, "", err
	}

	courses, err := fixture.GenerateCourses(r, cfg.Courses.Count, cfg.Courses.Format(), cfg.Courses.Durations)
	if err != nil {
		return nil, "", err
	}

	rooms, err := fixture.GenerateClassrooms(cfg.Classrooms.Count, cfg.Classrooms.Format(), cfg.Classrooms.Capacities)
	if err != nil {
		return nil, "", err
	}

	strategy, err := fixture.NewStrategy(cfg.Enrollment.Strategy, cfg.Enrollment.Options())
	if err != nil {
		return nil, "", err
	}

	res, err := fixture.GenerateEnrollments(r, courses, students, strategy)
	if err != nil {
		return nil, "", err
	}

	return &fixture.Dataset{
		Courses:     courses,
		Students:    students,
		Classrooms:  rooms,
		Enrollments: res.Enrollments,
		Allocations: res.Allocations,
	}, source, nil
}

func resolveRoster(cfg *config.Config, store archive.Store) ([]fixture.Student, string, error) {
	switch {
	case cfg.Students.RosterFile != "":
		students, err := tabular.LoadRoster(cfg.Students.RosterFile)
		if err != nil {
			return nil, "", err
		}
		return students, cfg.Students.RosterFile, nil

	case cfg.Students.RosterRun != "":
		if store == nil {
			return nil, "", ErrArchiveRequired
		}
		students, err := store.LoadRoster(cfg.Students.RosterRun)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load roster of run %s: %w", cfg.Students.RosterRun, err)
		}
		if err := fixture.CheckRoster(students); err != nil {
			return nil, "", err
		}
		return students, "run:" + cfg.Students.RosterRun, nil

	default:
		students, err := fixture.GenerateStudents(cfg.Students.Count, cfg.Students.Format())
		if err != nil {
			return nil, "", err
		}
		return students, rosterGenerated, nil
	}
}

type output struct {
	role   string
	path   string
	encode func(w io.Writer) error
}

// FileCount returns how many files a run with cfg writes
func FileCount(cfg *config.Config) int {
	n := 0
	if cfg.Output.Format != config.FormatXLSX {
		n += 4
	}
	if cfg.Output.Format != config.FormatCSV {
		n++
	}
	return n
}

// Write serializes ds in the fixed order courses, students, classrooms,
// attendance, then the optional workbook. It stops at the first failure;
// files already written stay in place.
func Write(ctx context.Context, cfg *config.Config, ds *fixture.Dataset, logger *zap.Logger, onFile func(archive.File)) ([]archive.File, error) {
	out := cfg.Output
	var outputs []output

	if out.Format != config.FormatXLSX {
		outputs = append(outputs,
			output{RoleCourses, filepath.Join(out.Dir, out.CoursesFile), func(w io.Writer) error {
				return tabular.WriteCourses(w, ds.Courses)
			}},
			output{RoleStudents, filepath.Join(out.Dir, out.StudentsFile), func(w io.Writer) error {
				return tabular.WriteStudents(w, ds.Students)
			}},
			output{RoleClassrooms, filepath.Join(out.Dir, out.ClassroomsFile), func(w io.Writer) error {
				return tabular.WriteClassrooms(w, ds.Classrooms)
			}},
			output{RoleAttendance, filepath.Join(out.Dir, out.AttendanceFile), func(w io.Writer) error {
				return tabular.WriteEnrollments(w, ds.Enrollments)
			}},
		)
	}

	var files []archive.File
	record := func(role, path string, n int64) {
		f := archive.File{Role: role, Path: path, Bytes: n}
		files = append(files, f)
		logger.Info("Wrote fixture file", zap.String("role", role), zap.String("path", path), zap.Int64("bytes", n))
		if onFile != nil {
			onFile(f)
		}
	}

	for _, o := range outputs {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		n, err := tabular.WriteFile(o.path, o.encode)
		if err != nil {
			return files, err
		}
		record(o.role, o.path, n)
	}

	if out.Format != config.FormatCSV {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path := filepath.Join(out.Dir, out.WorkbookFile)
		n, err := tabular.WriteWorkbook(path, ds)
		if err != nil {
			return files, err
		}
		record(RoleWorkbook, path, n)
	}

	return files, nil
}
