package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bmoura/tempotrack/internal/analyzer"
	"github.com/bmoura/tempotrack/internal/config"
	"github.com/bmoura/tempotrack/internal/core/constants"
	"github.com/bmoura/tempotrack/internal/util"
)

var (
	// Logging related
	debug bool

	// Data source
	sourceSpec      string
	cacheDir        string
	refreshInterval time.Duration
	reset           bool

	// Output related
	outputFormat string
	timezone     string

	// Window and filtering
	days         int
	fromDate     string
	toDate       string
	boundaryHour int
	limit        int
	watch        bool

	rootCmd = &cobra.Command{
		Use:   "tempotrack [flags]",
		Short: "Activity log analysis tool",
		Long: `tempotrack ingests a timestamped activity log (CSV, local file or URL)
and reports how time is spent per day, per hour of day and per custom cycle.

Examples:
  tempotrack --source activities.csv                  # Last 15 days, daily totals
  tempotrack --source https://host/export.csv         # Remote source, cached locally
  tempotrack --days 30 --output json                  # Last 30 days as JSON
  tempotrack --from 2024-03-01 --to 2024-03-15        # Explicit window
  tempotrack cycles                                   # 06:00-to-06:00 cycle totals
  tempotrack heatmap                                  # Minutes per hour of day
  tempotrack similar --category Sleep                 # Cycles resembling today`,
		RunE: runReport,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&sourceSpec, "source", "s", "",
		"Activity log source: local CSV path or http(s) URL (default from TEMPOTRACK_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "",
		"Snapshot cache directory (default ~/.tempotrack/cache)")
	rootCmd.PersistentFlags().DurationVar(&refreshInterval, "refresh-interval", 0,
		"How long cached source snapshots stay fresh (default 1h)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for naive timestamps (e.g., America/Sao_Paulo, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.PersistentFlags().IntVar(&days, "days", 0,
		fmt.Sprintf("Look back this many days (default %d)", constants.DefaultLookbackDays))
	rootCmd.PersistentFlags().StringVar(&fromDate, "from", "",
		"Window start date (2006-01-02); overrides --days")
	rootCmd.PersistentFlags().StringVar(&toDate, "to", "",
		"Window end date (2006-01-02); default is the newest event")

	rootCmd.Flags().IntVar(&boundaryHour, "boundary-hour", constants.CalendarBoundaryHour,
		"Hour at which a day rolls over (0 = calendar days)")
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Limit result rows (0 = unlimited)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and refresh when the source file changes")
	rootCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear the snapshot cache before running")
}

func Execute() error {
	return rootCmd.Execute()
}

// setup resolves flags against environment defaults, initializes the
// logger and time provider, and returns the base analyzer configuration.
func setup(bHour int) (*analyzer.Config, error) {
	defaults := config.Load()

	if sourceSpec == "" {
		sourceSpec = defaults.Source
	}
	if sourceSpec == "" {
		return nil, fmt.Errorf("no data source: pass --source or set TEMPOTRACK_SOURCE")
	}
	if timezone == "" {
		timezone = defaults.Timezone
	}
	if cacheDir == "" {
		cacheDir = defaults.CacheDir
	}
	if refreshInterval == 0 {
		refreshInterval = defaults.RefreshInterval
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaults.LogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, err
	}

	cacheDir = expandPath(cacheDir)
	if err := ensureDir(cacheDir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if reset {
		if err := clearCache(cacheDir); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
		util.LogInfo("Snapshot cache cleared")
	}

	if !strings.HasPrefix(sourceSpec, "http://") && !strings.HasPrefix(sourceSpec, "https://") {
		sourceSpec = expandPath(sourceSpec)
	}

	return &analyzer.Config{
		Source:          sourceSpec,
		CacheDir:        cacheDir,
		RefreshInterval: refreshInterval,
		Timezone:        timezone,
		OutputFormat:    outputFormat,
		BoundaryHour:    bHour,
		From:            fromDate,
		To:              toDate,
		Days:            days,
		Limit:           limit,
	}, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := setup(boundaryHour)
	if err != nil {
		return err
	}

	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	run := func() error { return a.Report(ctx) }
	if err := run(); err != nil {
		return err
	}
	if watch {
		return a.Watch(ctx, run)
	}
	return nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func clearCache(cacheDir string) error {
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			path := filepath.Join(cacheDir, entry.Name())
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}

	return nil
}
