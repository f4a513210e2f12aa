package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/bmoura/tempotrack/internal/core/constants"
	"github.com/bmoura/tempotrack/internal/core/model"
)

// BucketTotal is one (bucket, category) aggregation row.
type BucketTotal struct {
	Bucket   model.BucketKey `json:"bucket"`
	Category string          `json:"category"`
	Minutes  float64         `json:"minutes"`
	Count    int             `json:"count"`
}

// CategoryMean is the mean of per-period sums for one category. This is
// a mean of daily totals, not a mean of individual event durations; the
// two differ whenever a category occurs more than once per period.
type CategoryMean struct {
	Category    string  `json:"category"`
	MeanMinutes float64 `json:"meanMinutes"`
	Periods     int     `json:"periods"`
}

// HeatmapRow is one category's minutes over a complete 24-hour axis.
// Hours with no occurrences hold an explicit zero so consumers can
// render a fixed-size axis.
type HeatmapRow struct {
	Category string                       `json:"category"`
	Minutes  [constants.HoursPerDay]float64 `json:"minutes"`
}

// SumSegments groups segments by (bucket, category) and sums their
// durations, ordered by bucket then category.
func SumSegments(segments []model.Segment) []BucketTotal {
	totals := make(map[string]*BucketTotal)
	for _, seg := range segments {
		key := fmt.Sprintf("%s|%02d|%s", seg.Bucket.Date, seg.Bucket.Hour, seg.Category)
		row, ok := totals[key]
		if !ok {
			row = &BucketTotal{Bucket: seg.Bucket, Category: seg.Category}
			totals[key] = row
		}
		row.Minutes += seg.DurationMinutes
		row.Count++
	}
	return sortTotals(totals)
}

// SumWholeByCycle groups whole events by (cycle date, category) using
// the authored duration, filling an explicit zero row for every date in
// [from, to] and every category observed, so downstream consumers see a
// complete axis. When from or to is zero the observed date extent is
// used.
func SumWholeByCycle(events []model.Event, boundaryHour int, from, to model.Date) []BucketTotal {
	totals := make(map[string]*BucketTotal)
	categories := make(map[string]bool)

	for _, ev := range events {
		d := CycleDate(ev.Start, boundaryHour)
		categories[ev.Category] = true
		if from.IsZero() || d.Before(from) {
			from = d
		}
		if to.IsZero() || d.After(to) {
			to = d
		}
		key := fmt.Sprintf("%s|%s", d, ev.Category)
		row, ok := totals[key]
		if !ok {
			row = &BucketTotal{Bucket: model.BucketKey{Date: d, Hour: boundaryHour}, Category: ev.Category}
			totals[key] = row
		}
		row.Minutes += ev.DurationMinutes
		row.Count++
	}

	if len(totals) == 0 {
		return nil
	}

	// Zero rows for (date, category) pairs with no occurrences.
	for d := from; !d.After(to); d = d.AddDays(1) {
		for cat := range categories {
			key := fmt.Sprintf("%s|%s", d, cat)
			if _, ok := totals[key]; !ok {
				totals[key] = &BucketTotal{Bucket: model.BucketKey{Date: d, Hour: boundaryHour}, Category: cat}
			}
		}
	}

	return sortTotals(totals)
}

// MeanPerCycle reduces per-cycle sums to a per-category mean, ordered by
// category. A cycle counts toward a category's denominator only when the
// category occurs in it, matching a mean over observed daily totals.
func MeanPerCycle(events []model.Event, boundaryHour int) []CategoryMean {
	sums := make(map[string]map[model.Date]float64)
	for _, ev := range events {
		d := CycleDate(ev.Start, boundaryHour)
		if sums[ev.Category] == nil {
			sums[ev.Category] = make(map[model.Date]float64)
		}
		sums[ev.Category][d] += ev.DurationMinutes
	}

	means := make([]CategoryMean, 0, len(sums))
	for cat, perCycle := range sums {
		var total float64
		for _, minutes := range perCycle {
			total += minutes
		}
		means = append(means, CategoryMean{
			Category:    cat,
			MeanMinutes: total / float64(len(perCycle)),
			Periods:     len(perCycle),
		})
	}

	sort.Slice(means, func(i, j int) bool {
		return means[i].Category < means[j].Category
	})
	return means
}

// HourlyHeatmap reduces hour-width segments into per-category 24-hour
// rows, ordered by category. This is the segmented path: an event
// crossing midnight contributes its minutes to both sides of the
// boundary.
func HourlyHeatmap(segments []model.Segment) []HeatmapRow {
	rows := make(map[string]*HeatmapRow)
	for _, seg := range segments {
		row, ok := rows[seg.Category]
		if !ok {
			row = &HeatmapRow{Category: seg.Category}
			rows[seg.Category] = row
		}
		row.Minutes[seg.Bucket.Hour] += seg.DurationMinutes
	}
	return sortHeatmapRows(rows)
}

// WholeEventHourly attributes each event's full authored duration to its
// start hour, the naive grouping the segmented path exists to correct.
// Kept for occurrence counting and comparison; never use it for a
// minutes-per-hour intensity metric.
func WholeEventHourly(events []model.Event) []HeatmapRow {
	rows := make(map[string]*HeatmapRow)
	for _, ev := range events {
		row, ok := rows[ev.Category]
		if !ok {
			row = &HeatmapRow{Category: ev.Category}
			rows[ev.Category] = row
		}
		row.Minutes[ev.Start.Hour()] += ev.DurationMinutes
	}
	return sortHeatmapRows(rows)
}

// Day-period labels for the distribution split.
const (
	PeriodMorning = "morning (06h-18h)"
	PeriodNight   = "night (18h-06h)"
)

// DayPeriod classifies an event by its start hour.
func DayPeriod(start time.Time) string {
	h := start.Hour()
	if h >= constants.MorningStartHour && h < constants.NightStartHour {
		return PeriodMorning
	}
	return PeriodNight
}

// PeriodStats describes the spread of individual event durations for
// one (category, day period) pair.
type PeriodStats struct {
	Category      string  `json:"category"`
	Period        string  `json:"period"`
	Count         int     `json:"count"`
	MinMinutes    float64 `json:"minMinutes"`
	MedianMinutes float64 `json:"medianMinutes"`
	MeanMinutes   float64 `json:"meanMinutes"`
	MaxMinutes    float64 `json:"maxMinutes"`
}

// PeriodDistribution reduces individual event durations per
// (category, period), ordered by category then period.
func PeriodDistribution(events []model.Event) []PeriodStats {
	samples := make(map[string][]float64)
	for _, ev := range events {
		key := ev.Category + "|" + DayPeriod(ev.Start)
		samples[key] = append(samples[key], ev.DurationMinutes)
	}

	stats := make([]PeriodStats, 0, len(samples))
	for key, durations := range samples {
		sort.Float64s(durations)
		var total float64
		for _, d := range durations {
			total += d
		}

		n := len(durations)
		median := durations[n/2]
		if n%2 == 0 {
			median = (durations[n/2-1] + durations[n/2]) / 2
		}

		cat, period := splitKey(key)
		stats = append(stats, PeriodStats{
			Category:      cat,
			Period:        period,
			Count:         n,
			MinMinutes:    durations[0],
			MedianMinutes: median,
			MeanMinutes:   total / float64(n),
			MaxMinutes:    durations[n-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Category != stats[j].Category {
			return stats[i].Category < stats[j].Category
		}
		return stats[i].Period < stats[j].Period
	})
	return stats
}

func splitKey(key string) (string, string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func sortTotals(totals map[string]*BucketTotal) []BucketTotal {
	result := make([]BucketTotal, 0, len(totals))
	for _, row := range totals {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Bucket != result[j].Bucket {
			return result[i].Bucket.Before(result[j].Bucket)
		}
		return result[i].Category < result[j].Category
	})
	return result
}

func sortHeatmapRows(rows map[string]*HeatmapRow) []HeatmapRow {
	result := make([]HeatmapRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}
