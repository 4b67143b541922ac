package main

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"pkg.jsn.cam/fixturegen/internal/archive"
	"pkg.jsn.cam/fixturegen/internal/config"
	applogger "pkg.jsn.cam/fixturegen/internal/logger"
)

// openArchive resolves the archive path from -archive or the config file and
// returns the logger built from that config's log section.
func openArchive(archivePath, configPath string) (*archive.BoltStore, *zap.Logger) {
	overrides := make(map[string]any)
	if archivePath != "" {
		overrides["archive.path"] = archivePath
	}
	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}

	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fatalf("Failed to initialize logger: %v", err)
	}
	if cfg.Archive.Path == "" {
		logger.Fatal("Archive path is required (-archive or archive.path in config)")
	}

	store, err := archive.OpenBolt(cfg.Archive.Path)
	if err != nil {
		logger.Fatal("Failed to open archive", zap.String("path", cfg.Archive.Path), zap.Error(err))
	}
	return store, logger
}

func listRunsCmd(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	archivePath := fs.String("archive", "", "Path to the run archive database")
	configPath := fs.String("config", "", "Path to a YAML config file")
	fs.Parse(args)

	store, logger := openArchive(*archivePath, *configPath)
	defer logger.Sync()
	defer store.Close()

	runs, err := store.ListRuns()
	if err != nil {
		logger.Fatal("Failed to list runs", zap.Error(err))
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return
	}

	fmt.Printf("%-36s %-10s %-8s %-12s %s\n", "RUN ID", "STRATEGY", "SEED", "ENROLLMENTS", "CREATED")
	fmt.Println("─────────────────────────────────────────────────────────────────────────────────────────")
	for _, run := range runs {
		fmt.Printf("%-36s %-10s %-8d %-12s %s\n",
			run.ID,
			run.Strategy,
			run.Seed,
			humanize.Comma(int64(run.Enrollments)),
			humanize.Time(run.CreatedAt))
	}
}

func showRunCmd(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	archivePath := fs.String("archive", "", "Path to the run archive database")
	configPath := fs.String("config", "", "Path to a YAML config file")
	runID := fs.String("run", "", "Run ID")
	fs.Parse(args)

	if *runID == "" {
		fatalf("run is required")
	}

	store, logger := openArchive(*archivePath, *configPath)
	defer logger.Sync()
	defer store.Close()

	run, err := store.GetRun(*runID)
	if err != nil {
		logger.Fatal("Failed to get run", zap.String("run", *runID), zap.Error(err))
	}

	fmt.Printf("Run Details:\n")
	fmt.Printf("  ID:          %s\n", run.ID)
	fmt.Printf("  Created:     %s (%s)\n", run.CreatedAt.Format("2006-01-02 15:04:05"), humanize.Time(run.CreatedAt))
	fmt.Printf("  Seed:        %d\n", run.Seed)
	fmt.Printf("  Strategy:    %s\n", run.Strategy)
	fmt.Printf("  Roster:      %s\n", run.RosterSource)
	fmt.Printf("  Courses:     %s\n", humanize.Comma(int64(run.Courses)))
	fmt.Printf("  Students:    %s\n", humanize.Comma(int64(run.Students)))
	fmt.Printf("  Classrooms:  %s\n", humanize.Comma(int64(run.Classrooms)))
	fmt.Printf("  Enrollments: %s\n", humanize.Comma(int64(run.Enrollments)))

	printStats(run.Stats)
	if run.Stats.Clamped > 0 {
		fmt.Printf("  Clamped: %d courses\n", run.Stats.Clamped)
	}

	printFiles(run.Files)
	fmt.Printf("\nReuse this roster with: fixturegen generate -archive <db> -roster-run %s\n", run.ID)
}
