package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"

	"github.com/bmoura/tempotrack/internal/util"
)

const summaryChartHeight = 8

// SummaryFormatter prints a condensed overview: headline means, a
// sparkline of daily totals and the data-quality counters.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

var (
	summaryTitle = color.New(color.Bold)
	summaryWarn  = color.New(color.FgYellow)
)

func (f *SummaryFormatter) Daily(r *DailyReport) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(summaryTitle.Sprintf("Activity Summary %s to %s", r.From, r.To))
	fmt.Println(strings.Repeat("=", 60))

	for _, m := range r.Means {
		fmt.Printf("  %s: %s/day (%sm) over %d days\n",
			m.Category, util.FormatHours(m.MeanMinutes), formatMinutes(m.MeanMinutes), m.Periods)
	}

	series := dailyTotals(r.Rows)
	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(summaryChartHeight),
			asciigraph.Caption("total tracked minutes per day"),
		))
	}

	excluded := r.Quality.MalformedTimestamp + r.Quality.MissingCategory + r.Quality.InvertedInterval
	if excluded > 0 || r.Quality.DurationMismatch > 0 {
		fmt.Println()
		fmt.Println(summaryWarn.Sprintf("Data quality: %d rows excluded, %d duration mismatches (of %d rows)",
			excluded, r.Quality.DurationMismatch, r.Quality.TotalRows))
	}
	return nil
}

func (f *SummaryFormatter) Heatmap(r *HeatmapReport) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(summaryTitle.Sprintf("Hourly Pattern %s to %s", r.From, r.To))
	fmt.Println(strings.Repeat("=", 60))

	for _, row := range r.Rows {
		peak, total := 0, 0.0
		for h, m := range row.Minutes {
			total += m
			if m > row.Minutes[peak] {
				peak = h
			}
		}
		fmt.Printf("  %s: %s total, peak at %02dh (%sm)\n",
			row.Category, util.FormatMinutes(total), peak, formatMinutes(row.Minutes[peak]))
	}
	return nil
}

func (f *SummaryFormatter) Similarity(r *SimilarityReport) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(summaryTitle.Sprintf("Cycles similar to %s (%q at minute %s)",
		r.CurrentCycle, r.KeyCategory, formatMinutes(r.CutoffMinutes)))
	fmt.Println(strings.Repeat("=", 60))

	if len(r.Records) == 0 {
		fmt.Println("  No similar cycles within tolerance.")
		return nil
	}

	fmt.Printf("  %d similar cycles (today %sm, tolerance %sm):",
		len(r.Records), formatMinutes(r.TodayValue), formatMinutes(r.ToleranceMinutes))
	for _, rec := range r.Records {
		fmt.Printf(" %s(±%s)", rec.CycleDate, formatMinutes(rec.Difference))
	}
	fmt.Println()

	fmt.Println()
	fmt.Println("  Expected for the rest of the cycle:")
	for _, s := range r.Stats {
		fmt.Printf("    %s: %s mean (%s to %s)\n",
			s.Category, util.FormatMinutes(s.MeanMinutes),
			util.FormatMinutes(s.MinMinutes), util.FormatMinutes(s.MaxMinutes))
	}
	return nil
}

// dailyTotals sums all categories per date, ordered by date.
func dailyTotals(rows []DailyRow) []float64 {
	totals := make(map[string]float64)
	for _, row := range rows {
		totals[row.Date] += row.Minutes
	}

	dates := make([]string, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]float64, 0, len(dates))
	for _, d := range dates {
		series = append(series, totals[d])
	}
	return series
}
