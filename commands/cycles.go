package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bmoura/tempotrack/internal/analyzer"
	"github.com/bmoura/tempotrack/internal/core/constants"
)

var (
	cyclesBoundaryHour int
	cyclesLimit        int

	cyclesCmd = &cobra.Command{
		Use:   "cycles",
		Short: "Daily totals over custom cycle days instead of calendar days",
		Long: `Reports per-cycle totals where a "day" runs from the boundary hour to the
same hour of the next calendar day. With the default 06:00 boundary an
event starting at 02:00 counts toward the previous cycle, so activity
that straddles midnight is not split across two rows.`,
		RunE: runCycles,
	}
)

func init() {
	cyclesCmd.Flags().IntVar(&cyclesBoundaryHour, "boundary-hour", constants.CycleBoundaryHour,
		"Hour at which a cycle day rolls over")
	cyclesCmd.Flags().IntVar(&cyclesLimit, "limit", 0,
		"Limit result rows (0 = unlimited)")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cyclesBoundaryHour)
	if err != nil {
		return err
	}
	cfg.Limit = cyclesLimit

	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}
	return a.Report(context.Background())
}
