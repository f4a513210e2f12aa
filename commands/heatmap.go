package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bmoura/tempotrack/internal/analyzer"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Minutes per hour of day, split at hour boundaries",
	Long: `Shows how each category's time distributes over the 24 hours of the day.
Events are split at hour boundaries before summing, so an event from
23:50 to 00:10 credits ten minutes to hour 23 and ten to hour 0.`,
	RunE: runHeatmap,
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	cfg, err := setup(0)
	if err != nil {
		return err
	}

	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}
	return a.Heatmap(context.Background())
}
