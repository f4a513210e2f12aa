package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bmoura/tempotrack/internal/analyzer"
	"github.com/bmoura/tempotrack/internal/core/constants"
)

var (
	similarCategory     string
	similarTolerance    float64
	similarElapsed      float64
	similarCategories   []string
	similarBoundaryHour int

	similarCmd = &cobra.Command{
		Use:   "similar",
		Short: "Find past cycles resembling today and project the remainder",
		Long: `Compares today's cumulative total for one key category against every
historical cycle at the same elapsed-minutes mark. Cycles within the
tolerance are reported, and what they did after that mark becomes a
min/mean/max projection for the rest of today.

Examples:
  tempotrack similar --category Sleep                  # Compare at the current time
  tempotrack similar --category Sleep --tolerance 30   # Tighter match
  tempotrack similar --category Sleep --elapsed 540    # As of minute 540 (15:00 for a 06:00 boundary)
  tempotrack similar --category Sleep --categories Sleep,Feed`,
		RunE: runSimilar,
	}
)

func init() {
	similarCmd.Flags().StringVarP(&similarCategory, "category", "c", "",
		"Key category to compare cycles by (required)")
	similarCmd.Flags().Float64Var(&similarTolerance, "tolerance", constants.DefaultToleranceMinutes,
		"Maximum difference in minutes for a cycle to count as similar")
	similarCmd.Flags().Float64Var(&similarElapsed, "elapsed", 0,
		"Elapsed minutes into the cycle to compare at (0 = derive from the current time)")
	similarCmd.Flags().StringSliceVar(&similarCategories, "categories", nil,
		"Categories to project (default: every category in the matched history)")
	similarCmd.Flags().IntVar(&similarBoundaryHour, "boundary-hour", constants.CycleBoundaryHour,
		"Hour at which a cycle day rolls over")
	similarCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg, err := setup(similarBoundaryHour)
	if err != nil {
		return err
	}
	cfg.KeyCategory = similarCategory
	cfg.ToleranceMinutes = similarTolerance
	cfg.CutoffMinutes = similarElapsed
	cfg.Categories = similarCategories

	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}
	return a.Similar(context.Background())
}
