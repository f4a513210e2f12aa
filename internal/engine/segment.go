package engine

import (
	"time"

	"github.com/bmoura/tempotrack/internal/core/model"
)

// BucketWidth selects the bucket grid events are split against.
type BucketWidth int

const (
	// WidthHour splits at every hour boundary, for minutes-per-hour
	// intensity metrics.
	WidthHour BucketWidth = iota
	// WidthCycleDay splits at cycle-day boundaries, for cross-midnight
	// cycle totals.
	WidthCycleDay
)

// Segmenter splits events at bucket boundaries. It is a small state
// machine per event: the state is the current position, the transition
// advances to the next boundary or the event end, whichever is sooner,
// and the terminal state is the event end.
type Segmenter struct {
	Width BucketWidth
	// BoundaryHour is the cycle day-boundary hour; only consulted for
	// WidthCycleDay.
	BoundaryHour int
}

// Segment splits ev into contiguous sub-segments, each wholly inside one
// bucket, preserving the total timestamp interval. Zero-length and
// inverted intervals produce no segments.
func (s Segmenter) Segment(ev model.Event) []model.Segment {
	if !ev.Start.Before(ev.End) {
		return nil
	}

	var segments []model.Segment
	cur := ev.Start
	for cur.Before(ev.End) {
		// The next boundary is strictly after cur: a position sitting
		// exactly on a boundary advances one full bucket, never zero.
		boundary := s.nextBoundary(cur)

		segEnd := boundary
		if ev.End.Before(boundary) {
			segEnd = ev.End
		}

		segments = append(segments, model.Segment{
			Bucket:          s.bucketOf(cur),
			Category:        ev.Category,
			DurationMinutes: segEnd.Sub(cur).Minutes(),
		})
		cur = segEnd
	}
	return segments
}

// SegmentAll splits every event and concatenates the results.
func (s Segmenter) SegmentAll(events []model.Event) []model.Segment {
	var segments []model.Segment
	for _, ev := range events {
		segments = append(segments, s.Segment(ev)...)
	}
	return segments
}

// nextBoundary returns the first bucket boundary strictly after t.
func (s Segmenter) nextBoundary(t time.Time) time.Time {
	switch s.Width {
	case WidthCycleDay:
		d := CycleDate(t, s.BoundaryHour)
		return CycleStart(d.AddDays(1), s.BoundaryHour, t.Location())
	default:
		y, m, d := t.Date()
		return time.Date(y, m, d, t.Hour()+1, 0, 0, 0, t.Location())
	}
}

// bucketOf returns the key of the bucket containing t.
func (s Segmenter) bucketOf(t time.Time) model.BucketKey {
	switch s.Width {
	case WidthCycleDay:
		return model.BucketKey{
			Date: CycleDate(t, s.BoundaryHour),
			Hour: s.BoundaryHour,
		}
	default:
		return model.BucketKey{
			Date: model.DateOf(t),
			Hour: t.Hour(),
		}
	}
}
