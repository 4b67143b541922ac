package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"pkg.jsn.cam/fixturegen/internal/archive"
	"pkg.jsn.cam/fixturegen/internal/config"
	applogger "pkg.jsn.cam/fixturegen/internal/logger"
	"pkg.jsn.cam/fixturegen/internal/runner"
	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "Path to a YAML config file")
		seed       = fs.Uint64("seed", 0, "Random seed")
		outDir     = fs.String("out", "", "Output directory")
		strategy   = fs.String("strategy", "", "Enrollment strategy (random|rotated)")
		format     = fs.String("format", "", "Output format (csv|xlsx|both)")
		roster     = fs.String("roster", "", "Reuse students from a .csv or .xlsx roster")
		rosterRun  = fs.String("roster-run", "", "Reuse the roster of an archived run")
		archiveDB  = fs.String("archive", "", "Path to the run archive database")
		progress   = fs.Bool("progress", false, "Show a progress bar while writing files")
	)
	fs.Parse(args)

	// Only flags given on the command line override the config.
	flagKeys := map[string]string{
		"seed":       "seed",
		"out":        "output.dir",
		"strategy":   "enrollment.strategy",
		"format":     "output.format",
		"roster":     "students.roster_file",
		"roster-run": "students.roster_run",
		"archive":    "archive.path",
	}
	flagValues := map[string]any{
		"seed":       *seed,
		"out":        *outDir,
		"strategy":   *strategy,
		"format":     *format,
		"roster":     *roster,
		"roster-run": *rosterRun,
		"archive":    *archiveDB,
	}
	overrides := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = flagValues[f.Name]
		}
	})

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}

	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	opts := runner.Options{}
	if cfg.Archive.Path != "" {
		store, err := archive.OpenBolt(cfg.Archive.Path)
		if err != nil {
			logger.Fatal("Failed to open archive", zap.String("path", cfg.Archive.Path), zap.Error(err))
		}
		defer store.Close()
		opts.Store = store
	}

	if *progress {
		bar := progressbar.NewOptions(runner.FileCount(cfg),
			progressbar.OptionSetDescription("writing fixtures"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		opts.OnFile = func(f archive.File) {
			bar.Describe(f.Role)
			bar.Add(1)
		}
		defer bar.Finish()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, cfg, logger, opts)
	if err != nil {
		logger.Fatal("Fixture run failed", zap.Error(err))
	}

	printSummary(summary)
}

func printSummary(s *runner.Summary) {
	fmt.Printf("Fixtures generated!\n")
	fmt.Printf("  Run ID:      %s\n", s.RunID)
	fmt.Printf("  Seed:        %d\n", s.Seed)
	fmt.Printf("  Strategy:    %s\n", s.Strategy)
	fmt.Printf("  Roster:      %s\n", s.RosterSource)
	fmt.Printf("  Courses:     %s\n", humanize.Comma(int64(s.Courses)))
	fmt.Printf("  Students:    %s\n", humanize.Comma(int64(s.Students)))
	fmt.Printf("  Classrooms:  %s\n", humanize.Comma(int64(s.Classrooms)))
	fmt.Printf("  Enrollments: %s\n", humanize.Comma(int64(s.Enrollments)))

	printStats(s.Stats)

	if len(s.Clamped) > 0 {
		fmt.Printf("\nClamped to roster size:\n")
		for _, a := range s.Clamped {
			fmt.Printf("  %-20s requested %d, assigned %d\n", a.CourseCode, a.Requested, a.Assigned)
		}
	}

	printFiles(s.Files)
}

func printStats(st fixture.Stats) {
	fmt.Printf("\nStudents per course:\n")
	fmt.Printf("  Min: %d\n", st.Min)
	fmt.Printf("  Max: %d\n", st.Max)
	fmt.Printf("  Avg: %.1f\n", st.Mean)
}

func printFiles(files []archive.File) {
	fmt.Printf("\nFiles:\n")
	for _, f := range files {
		fmt.Printf("  %-11s %-10s %s\n", f.Role, humanize.Bytes(uint64(f.Bytes)), f.Path)
	}
}

func listStrategies() {
	for _, name := range fixture.ListStrategies() {
		st, _ := fixture.NewStrategy(name, fixture.Options{})
		fmt.Printf("%-10s %s\n", name, st.Selector.Description())
	}
}
