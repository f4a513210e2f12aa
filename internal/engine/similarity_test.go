package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmoura/tempotrack/internal/core/model"
)

// sleepCycle builds one historical cycle whose "Sleep" total by the
// given cutoff equals totalMinutes, split across two events, plus one
// event still in progress at the cutoff and one after it.
func sleepCycle(d model.Date, boundaryHour int, totalMinutes float64, loc *time.Location) []model.Event {
	start := CycleStart(d, boundaryHour, loc)
	first := totalMinutes / 2
	second := totalMinutes - first

	return []model.Event{
		{
			Start:           start.Add(30 * time.Minute),
			End:             start.Add(30*time.Minute + time.Duration(first*float64(time.Minute))),
			Category:        "Sleep",
			DurationMinutes: first,
		},
		{
			Start:           start.Add(5 * time.Hour),
			End:             start.Add(5*time.Hour + time.Duration(second*float64(time.Minute))),
			Category:        "Sleep",
			DurationMinutes: second,
		},
		// Still in progress at minute 600: contributes nothing.
		{
			Start:           start.Add(9 * time.Hour),
			End:             start.Add(12 * time.Hour),
			Category:        "Sleep",
			DurationMinutes: 180,
		},
		// Entirely after the cutoff.
		{
			Start:           start.Add(11 * time.Hour),
			End:             start.Add(11*time.Hour + 45*time.Minute),
			Category:        "Feed",
			DurationMinutes: 45,
		},
	}
}

func TestFindSimilarScenario(t *testing.T) {
	// Three cycles with boundary 06:00 and Sleep totals 300/360/420 by
	// the minute-600 cutoff; today's value 350 and tolerance 50 keep
	// the first two (differences 50 and 10) and exclude the third (70).
	loc := time.UTC
	m := Matcher{BoundaryHour: 6, Location: loc}

	d1 := model.Date{Year: 2024, Month: 1, Day: 7}
	d2 := model.Date{Year: 2024, Month: 1, Day: 8}
	d3 := model.Date{Year: 2024, Month: 1, Day: 9}
	history := map[model.Date][]model.Event{
		d1: sleepCycle(d1, 6, 300, loc),
		d2: sleepCycle(d2, 6, 360, loc),
		d3: sleepCycle(d3, 6, 420, loc),
	}

	records := m.FindSimilar(history, "Sleep", 350, 50, 600)
	require.Len(t, records, 2)

	// Ordered by ascending difference.
	assert.Equal(t, d2, records[0].CycleDate)
	assert.InDelta(t, 360.0, records[0].KeyCategoryTotal, 1e-9)
	assert.InDelta(t, 10.0, records[0].Difference, 1e-9)

	assert.Equal(t, d1, records[1].CycleDate)
	assert.InDelta(t, 300.0, records[1].KeyCategoryTotal, 1e-9)
	assert.InDelta(t, 50.0, records[1].Difference, 1e-9)
}

func TestFindSimilarZeroTolerance(t *testing.T) {
	loc := time.UTC
	m := Matcher{BoundaryHour: 6, Location: loc}

	d1 := model.Date{Year: 2024, Month: 1, Day: 7}
	d2 := model.Date{Year: 2024, Month: 1, Day: 8}
	d3 := model.Date{Year: 2024, Month: 1, Day: 9}
	history := map[model.Date][]model.Event{
		d1: sleepCycle(d1, 6, 300, loc),
		d2: sleepCycle(d2, 6, 360, loc),
		d3: sleepCycle(d3, 6, 300, loc),
	}

	// tolerance=0 returns exactly the cycles matching today's value.
	records := m.FindSimilar(history, "Sleep", 300, 0, 600)
	require.Len(t, records, 2)
	assert.Equal(t, d1, records[0].CycleDate)
	assert.Equal(t, d3, records[1].CycleDate)
	for _, rec := range records {
		assert.Zero(t, rec.Difference)
	}
}

func TestFindSimilarEmptyHistory(t *testing.T) {
	m := Matcher{BoundaryHour: 6, Location: time.UTC}

	records := m.FindSimilar(nil, "Sleep", 300, 50, 600)
	assert.Empty(t, records)

	records = m.FindSimilar(map[model.Date][]model.Event{}, "Sleep", 300, 50, 600)
	assert.Empty(t, records)
}

func TestCumulativeAtCutoffStrictEnd(t *testing.T) {
	loc := time.UTC
	m := Matcher{BoundaryHour: 6, Location: loc}
	d := model.Date{Year: 2024, Month: 1, Day: 10}
	cycleStart := CycleStart(d, 6, loc)

	events := []model.Event{
		// Ends exactly at the cutoff: strict inequality excludes it.
		{
			Start:           cycleStart.Add(8 * time.Hour),
			End:             cycleStart.Add(10 * time.Hour),
			Category:        "Sleep",
			DurationMinutes: 120,
		},
		// Ends one second before the cutoff: included.
		{
			Start:           cycleStart.Add(2 * time.Hour),
			End:             cycleStart.Add(10*time.Hour - time.Second),
			Category:        "Sleep",
			DurationMinutes: 479,
		},
		// Wrong category: never counted.
		{
			Start:           cycleStart.Add(1 * time.Hour),
			End:             cycleStart.Add(2 * time.Hour),
			Category:        "Feed",
			DurationMinutes: 60,
		},
	}

	total := m.CumulativeAtCutoff(d, events, "Sleep", 600)
	assert.InDelta(t, 479.0, total, 1e-9)
}
