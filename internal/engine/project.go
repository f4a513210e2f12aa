package engine

import (
	"sort"

	"github.com/bmoura/tempotrack/internal/core/model"
)

// Projection is what the set of similar cycles says about the remainder
// of the current cycle.
type Projection struct {
	// Stats holds one entry per tracked category, ordered by category.
	// Categories that never recur after the cutoff report all-zero
	// rather than being omitted.
	Stats []model.ProjectionStat
	// Remaining is the union of all post-cutoff events across similar
	// cycles, ordered by cycle date then start instant.
	Remaining []model.RemainingInterval
}

// Project restricts each similar cycle to the portion strictly after its
// cutoff instant and reduces per-category remaining duration across
// cycles into min/mean/max. Each similar cycle contributes exactly one
// observation per tracked category; a cycle where the category does not
// recur observes zero. An empty similar set yields all-zero stats for
// every tracked category.
func (m Matcher) Project(history map[model.Date][]model.Event, similar []model.SimilarityRecord, cutoffMinutes float64, categories []string) Projection {
	tracked := trackedCategories(categories, history)

	observations := make(map[string][]float64, len(tracked))
	var remaining []model.RemainingInterval

	for _, rec := range similar {
		cutoff := CutoffInstant(rec.CycleDate, m.BoundaryHour, cutoffMinutes, m.Location)

		perCategory := make(map[string]float64, len(tracked))
		for _, ev := range history[rec.CycleDate] {
			if ev.Start.Before(cutoff) {
				continue
			}
			perCategory[ev.Category] += ev.DurationMinutes
			remaining = append(remaining, model.RemainingInterval{
				CycleDate:       rec.CycleDate,
				Start:           ev.Start,
				End:             ev.End,
				Category:        ev.Category,
				Label:           ev.Label,
				DurationMinutes: ev.DurationMinutes,
			})
		}

		for _, cat := range tracked {
			observations[cat] = append(observations[cat], perCategory[cat])
		}
	}

	stats := make([]model.ProjectionStat, 0, len(tracked))
	for _, cat := range tracked {
		stats = append(stats, reduceObservations(cat, observations[cat]))
	}

	sort.Slice(remaining, func(i, j int) bool {
		if !remaining[i].CycleDate.Equal(remaining[j].CycleDate) {
			return remaining[i].CycleDate.Before(remaining[j].CycleDate)
		}
		return remaining[i].Start.Before(remaining[j].Start)
	})

	return Projection{Stats: stats, Remaining: remaining}
}

// trackedCategories returns the explicit category list when supplied,
// otherwise the sorted union of categories observed in the history.
func trackedCategories(categories []string, history map[model.Date][]model.Event) []string {
	if len(categories) > 0 {
		sorted := make([]string, len(categories))
		copy(sorted, categories)
		sort.Strings(sorted)
		return sorted
	}

	seen := make(map[string]bool)
	for _, events := range history {
		for _, ev := range events {
			seen[ev.Category] = true
		}
	}
	union := make([]string, 0, len(seen))
	for cat := range seen {
		union = append(union, cat)
	}
	sort.Strings(union)
	return union
}

func reduceObservations(category string, obs []float64) model.ProjectionStat {
	stat := model.ProjectionStat{Category: category}
	if len(obs) == 0 {
		return stat
	}

	stat.MinMinutes = obs[0]
	stat.MaxMinutes = obs[0]
	var total float64
	for _, v := range obs {
		if v < stat.MinMinutes {
			stat.MinMinutes = v
		}
		if v > stat.MaxMinutes {
			stat.MaxMinutes = v
		}
		total += v
	}
	stat.MeanMinutes = total / float64(len(obs))
	return stat
}
