package engine

import (
	"sort"
	"time"

	"github.com/bmoura/tempotrack/internal/core/model"
)

// Matcher compares a partially-elapsed current cycle against historical
// cycles truncated to the same elapsed point.
type Matcher struct {
	BoundaryHour int
	Location     *time.Location
}

// CumulativeAtCutoff sums the key category's authored durations within
// one cycle, restricted to events that ended strictly before the cycle's
// cutoff instant. An event still in progress at the cutoff contributes
// nothing: at the equivalent point in time its total was not yet known.
func (m Matcher) CumulativeAtCutoff(cycleDate model.Date, events []model.Event, keyCategory string, cutoffMinutes float64) float64 {
	cutoff := CutoffInstant(cycleDate, m.BoundaryHour, cutoffMinutes, m.Location)

	var total float64
	for _, ev := range events {
		if ev.Category != keyCategory {
			continue
		}
		if ev.End.Before(cutoff) {
			total += ev.DurationMinutes
		}
	}
	return total
}

// FindSimilar computes, for every historical cycle, the key category's
// cumulative total up to the equivalent cutoff, and returns the cycles
// whose total lies within tolerance of todayValue, ordered by ascending
// difference (ties by cycle date). An empty history or zero matches
// yields an empty result; that is a valid signal, not an error.
func (m Matcher) FindSimilar(history map[model.Date][]model.Event, keyCategory string, todayValue, toleranceMinutes, cutoffMinutes float64) []model.SimilarityRecord {
	records := make([]model.SimilarityRecord, 0, len(history))
	for _, d := range SortedCycleDates(history) {
		total := m.CumulativeAtCutoff(d, history[d], keyCategory, cutoffMinutes)

		diff := todayValue - total
		if diff < 0 {
			diff = -diff
		}
		if diff > toleranceMinutes {
			continue
		}

		records = append(records, model.SimilarityRecord{
			CycleDate:        d,
			KeyCategoryTotal: total,
			Difference:       diff,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Difference < records[j].Difference
	})
	return records
}
