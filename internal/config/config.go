// Package config loads generator settings from defaults, a YAML file,
// FIXTUREGEN_* environment variables and explicit overrides.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

// Output formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatBoth = "both"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full generator configuration
type Config struct {
	Seed       uint64           `mapstructure:"seed"`
	Output     OutputConfig     `mapstructure:"output"`
	Courses    CourseConfig     `mapstructure:"courses"`
	Students   StudentConfig    `mapstructure:"students"`
	Classrooms ClassroomConfig  `mapstructure:"classrooms"`
	Enrollment EnrollmentConfig `mapstructure:"enrollment"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Log        LogConfig        `mapstructure:"log"`
}

// OutputConfig names the destination files
type OutputConfig struct {
	Dir            string `mapstructure:"dir"`
	Format         string `mapstructure:"format"`
	CoursesFile    string `mapstructure:"courses_file"`
	StudentsFile   string `mapstructure:"students_file"`
	ClassroomsFile string `mapstructure:"classrooms_file"`
	AttendanceFile string `mapstructure:"attendance_file"`
	WorkbookFile   string `mapstructure:"workbook_file"`
}

// EntityConfig controls count and identifier shape for one record set
type EntityConfig struct {
	Count      int    `mapstructure:"count"`
	Prefix     string `mapstructure:"prefix"`
	Width      int    `mapstructure:"width"`
	NamePrefix string `mapstructure:"name_prefix"`
	PadName    bool   `mapstructure:"pad_name"`
}

// Format converts the identifier settings to a fixture.CodeFormat
func (e EntityConfig) Format() fixture.CodeFormat {
	return fixture.CodeFormat{
		Prefix:     e.Prefix,
		Width:      e.Width,
		NamePrefix: e.NamePrefix,
		PadName:    e.PadName,
	}
}

type CourseConfig struct {
	EntityConfig `mapstructure:",squash"`
	Durations    []int `mapstructure:"durations"`
}

// StudentConfig also selects where an existing roster comes from.
// RosterFile and RosterRun are mutually exclusive.
type StudentConfig struct {
	EntityConfig `mapstructure:",squash"`
	RosterFile   string `mapstructure:"roster_file"`
	RosterRun    string `mapstructure:"roster_run"`
}

type ClassroomConfig struct {
	EntityConfig `mapstructure:",squash"`
	Capacities   []int `mapstructure:"capacities"`
}

// EnrollmentConfig selects the strategy and its parameters.
// Table wins over Distribution when both are set.
type EnrollmentConfig struct {
	Strategy     string           `mapstructure:"strategy"`
	Min          int              `mapstructure:"min"`
	Max          int              `mapstructure:"max"`
	Table        []int            `mapstructure:"table"`
	Distribution []fixture.Bucket `mapstructure:"distribution"`
}

// TargetTable returns the per-course table for table-driven strategies
func (e EnrollmentConfig) TargetTable() []int {
	if len(e.Table) > 0 {
		return e.Table
	}
	return fixture.DistributionTable(e.Distribution)
}

// Options converts the config to strategy options
func (e EnrollmentConfig) Options() fixture.Options {
	return fixture.Options{Min: e.Min, Max: e.Max, Table: e.TargetTable()}
}

// ArchiveConfig points at the run archive; an empty path disables it
type ArchiveConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig selects zap level and encoding (json or console)
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 42)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", FormatCSV)
	v.SetDefault("output.courses_file", "format2_AllCourses.csv")
	v.SetDefault("output.students_file", "format2_AllStudents.csv")
	v.SetDefault("output.classrooms_file", "format2_AllClassrooms.csv")
	v.SetDefault("output.attendance_file", "format2_AllAttendanceLists.csv")
	v.SetDefault("output.workbook_file", "format2_All.xlsx")

	v.SetDefault("courses.count", 30)
	v.SetDefault("courses.prefix", "CourseCode_")
	v.SetDefault("courses.width", 3)
	v.SetDefault("courses.name_prefix", "Course ")
	v.SetDefault("courses.pad_name", true)
	v.SetDefault("courses.durations", []int{60, 90, 120, 150})

	v.SetDefault("students.count", 400)
	v.SetDefault("students.prefix", "Std_ID_")
	v.SetDefault("students.width", 4)
	v.SetDefault("students.name_prefix", "Student ")
	v.SetDefault("students.pad_name", false)
	v.SetDefault("students.roster_file", "")
	v.SetDefault("students.roster_run", "")

	v.SetDefault("classrooms.count", 15)
	v.SetDefault("classrooms.prefix", "Room_")
	v.SetDefault("classrooms.width", 3)
	v.SetDefault("classrooms.name_prefix", "Classroom ")
	v.SetDefault("classrooms.pad_name", false)
	v.SetDefault("classrooms.capacities", []int{40, 50, 60, 80, 100, 120, 150, 200})

	v.SetDefault("enrollment.strategy", "random")
	v.SetDefault("enrollment.min", 30)
	v.SetDefault("enrollment.max", 120)

	v.SetDefault("archive.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configuration with precedence overrides > env > file > defaults.
// An empty path searches ./fixturegen.yaml and ./config/fixturegen.yaml; a
// missing file there is not an error. Override keys use dotted viper paths.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fixturegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("FIXTUREGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for key, val := range overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for inconsistencies that would otherwise
// surface halfway through a run.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Courses.Count < 1 {
		return invalid("courses.count must be positive, got %d", c.Courses.Count)
	}
	if c.Classrooms.Count < 1 {
		return invalid("classrooms.count must be positive, got %d", c.Classrooms.Count)
	}
	if c.Students.RosterFile == "" && c.Students.RosterRun == "" && c.Students.Count < 1 {
		return invalid("students.count must be positive, got %d", c.Students.Count)
	}
	if c.Students.RosterFile != "" && c.Students.RosterRun != "" {
		return invalid("students.roster_file and students.roster_run are mutually exclusive")
	}
	if c.Students.RosterRun != "" && c.Archive.Path == "" {
		return invalid("students.roster_run requires archive.path")
	}

	for name, e := range map[string]EntityConfig{
		"courses":    c.Courses.EntityConfig,
		"students":   c.Students.EntityConfig,
		"classrooms": c.Classrooms.EntityConfig,
	} {
		if e.Width < 0 || e.Width > 9 {
			return invalid("%s.width must be within [0,9], got %d", name, e.Width)
		}
	}

	if len(c.Courses.Durations) == 0 {
		return invalid("courses.durations: %v", fixture.ErrEmptyCandidates)
	}
	if len(c.Classrooms.Capacities) == 0 {
		return invalid("classrooms.capacities: %v", fixture.ErrEmptyCandidates)
	}

	if !slices.Contains([]string{FormatCSV, FormatXLSX, FormatBoth}, c.Output.Format) {
		return invalid("output.format must be csv, xlsx or both, got %q", c.Output.Format)
	}

	if _, ok := fixture.Registry[c.Enrollment.Strategy]; !ok {
		return fmt.Errorf("%w: %w: %q (have %v)", ErrInvalidConfig, fixture.ErrUnknownStrategy, c.Enrollment.Strategy, fixture.ListStrategies())
	}

	// Parameter checks for the built-in strategies; others validate in their target policy.
	switch c.Enrollment.Strategy {
	case "random":
		if c.Enrollment.Min < 0 || c.Enrollment.Min > c.Enrollment.Max {
			return fmt.Errorf("%w: %w: enrollment [%d,%d]", ErrInvalidConfig, fixture.ErrInvalidRange, c.Enrollment.Min, c.Enrollment.Max)
		}
	case "rotated":
		if n := len(c.Enrollment.TargetTable()); n != c.Courses.Count {
			return fmt.Errorf("%w: %w: %d entries for %d courses", ErrInvalidConfig, fixture.ErrTableLength, n, c.Courses.Count)
		}
	}

	return nil
}
