package engine

import (
	"sort"
	"time"

	"github.com/bmoura/tempotrack/internal/core/model"
)

// CycleDate maps an event start to the date of the cycle it belongs to
// under the given day-boundary hour. Starts before the boundary hour
// belong to the previous day's cycle. boundaryHour 0 degenerates to
// plain calendar-day grouping. Assignment looks at the start only; the
// end plays no role even when the event runs into the next cycle.
func CycleDate(start time.Time, boundaryHour int) model.Date {
	d := model.DateOf(start)
	if start.Hour() < boundaryHour {
		return d.AddDays(-1)
	}
	return d
}

// CycleStart returns the absolute instant at which the cycle dated d
// begins in loc.
func CycleStart(d model.Date, boundaryHour int, loc *time.Location) time.Time {
	return d.At(boundaryHour, loc)
}

// CutoffInstant returns the instant cutoffMinutes into the cycle dated d.
func CutoffInstant(d model.Date, boundaryHour int, cutoffMinutes float64, loc *time.Location) time.Time {
	return CycleStart(d, boundaryHour, loc).Add(time.Duration(cutoffMinutes * float64(time.Minute)))
}

// GroupByCycle partitions events into cycles by start time. Every event
// lands in exactly one cycle.
func GroupByCycle(events []model.Event, boundaryHour int) map[model.Date][]model.Event {
	cycles := make(map[model.Date][]model.Event)
	for _, ev := range events {
		d := CycleDate(ev.Start, boundaryHour)
		cycles[d] = append(cycles[d], ev)
	}
	return cycles
}

// SortedCycleDates returns the cycle dates of a grouping in ascending
// order.
func SortedCycleDates(cycles map[model.Date][]model.Event) []model.Date {
	dates := make([]model.Date, 0, len(cycles))
	for d := range cycles {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}
