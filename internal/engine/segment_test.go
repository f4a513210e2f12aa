package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmoura/tempotrack/internal/core/model"
)

func hourSegmenter() Segmenter {
	return Segmenter{Width: WidthHour}
}

func cycleSegmenter(boundaryHour int) Segmenter {
	return Segmenter{Width: WidthCycleDay, BoundaryHour: boundaryHour}
}

func TestSegmentConservation(t *testing.T) {
	loc := time.UTC

	events := []model.Event{
		{Start: time.Date(2024, 1, 10, 14, 10, 0, 0, loc), End: time.Date(2024, 1, 10, 14, 40, 0, 0, loc), Category: "Feed"},
		{Start: time.Date(2024, 1, 10, 23, 50, 0, 0, loc), End: time.Date(2024, 1, 11, 0, 10, 0, 0, loc), Category: "Sleep"},
		{Start: time.Date(2024, 1, 10, 22, 0, 0, 0, loc), End: time.Date(2024, 1, 11, 7, 30, 0, 0, loc), Category: "Sleep"},
		{Start: time.Date(2024, 1, 10, 18, 0, 0, 0, loc), End: time.Date(2024, 1, 10, 19, 0, 0, 0, loc), Category: "Awake"},
		{Start: time.Date(2024, 1, 10, 5, 59, 30, 0, loc), End: time.Date(2024, 1, 10, 6, 0, 30, 0, loc), Category: "Feed"},
	}

	for _, seg := range []Segmenter{hourSegmenter(), cycleSegmenter(6), cycleSegmenter(0)} {
		for _, ev := range events {
			segments := seg.Segment(ev)
			require.NotEmpty(t, segments)

			var total float64
			for _, s := range segments {
				assert.Greater(t, s.DurationMinutes, 0.0)
				assert.Equal(t, ev.Category, s.Category)
				total += s.DurationMinutes
			}
			assert.InDelta(t, ev.IntervalMinutes(), total, 1e-9,
				"segments must reproduce the event interval exactly")
		}
	}
}

func TestSegmentBoundaryStartDoesNotLoop(t *testing.T) {
	loc := time.UTC

	// Start exactly on an hour boundary: the walk must target the next
	// boundary strictly after the position, never a zero-length bucket.
	ev := model.Event{
		Start:    time.Date(2024, 1, 10, 18, 0, 0, 0, loc),
		End:      time.Date(2024, 1, 10, 19, 30, 0, 0, loc),
		Category: "Awake",
	}

	segments := hourSegmenter().Segment(ev)
	require.Len(t, segments, 2)
	assert.Equal(t, model.BucketKey{Date: model.Date{Year: 2024, Month: 1, Day: 10}, Hour: 18}, segments[0].Bucket)
	assert.InDelta(t, 60.0, segments[0].DurationMinutes, 1e-9)
	assert.Equal(t, 19, segments[1].Bucket.Hour)
	assert.InDelta(t, 30.0, segments[1].DurationMinutes, 1e-9)

	// Same property at the cycle boundary.
	ev = model.Event{
		Start:    time.Date(2024, 1, 10, 6, 0, 0, 0, loc),
		End:      time.Date(2024, 1, 11, 6, 30, 0, 0, loc),
		Category: "Sleep",
	}
	cycleSegs := cycleSegmenter(6).Segment(ev)
	require.Len(t, cycleSegs, 2)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 10}, cycleSegs[0].Bucket.Date)
	assert.InDelta(t, 24*60.0, cycleSegs[0].DurationMinutes, 1e-9)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 11}, cycleSegs[1].Bucket.Date)
	assert.InDelta(t, 30.0, cycleSegs[1].DurationMinutes, 1e-9)
}

func TestSegmentMidnightStraddle(t *testing.T) {
	loc := time.UTC

	ev := model.Event{
		Start:    time.Date(2024, 1, 10, 23, 50, 0, 0, loc),
		End:      time.Date(2024, 1, 11, 0, 10, 0, 0, loc),
		Category: "Sleep",
	}

	segments := hourSegmenter().Segment(ev)
	require.Len(t, segments, 2)

	assert.Equal(t, 23, segments[0].Bucket.Hour)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 10}, segments[0].Bucket.Date)
	assert.InDelta(t, 10.0, segments[0].DurationMinutes, 1e-9)

	assert.Equal(t, 0, segments[1].Bucket.Hour)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 11}, segments[1].Bucket.Date)
	assert.InDelta(t, 10.0, segments[1].DurationMinutes, 1e-9)
}

func TestSegmentDegenerateIntervals(t *testing.T) {
	loc := time.UTC
	at := time.Date(2024, 1, 10, 14, 0, 0, 0, loc)

	tests := []struct {
		name string
		ev   model.Event
	}{
		{
			name: "zero-length event produces no segments",
			ev:   model.Event{Start: at, End: at, Category: "Feed"},
		},
		{
			name: "inverted interval produces no segments",
			ev:   model.Event{Start: at, End: at.Add(-time.Hour), Category: "Feed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, hourSegmenter().Segment(tt.ev))
			assert.Empty(t, cycleSegmenter(6).Segment(tt.ev))
		})
	}
}

func TestSegmentMultiDayEvent(t *testing.T) {
	loc := time.UTC

	// 50 hours spanning three cycle days.
	ev := model.Event{
		Start:    time.Date(2024, 1, 10, 8, 0, 0, 0, loc),
		End:      time.Date(2024, 1, 12, 10, 0, 0, 0, loc),
		Category: "Away",
	}

	segments := cycleSegmenter(6).Segment(ev)
	require.Len(t, segments, 3)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 10}, segments[0].Bucket.Date)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 11}, segments[1].Bucket.Date)
	assert.Equal(t, model.Date{Year: 2024, Month: 1, Day: 12}, segments[2].Bucket.Date)

	hourSegs := hourSegmenter().Segment(ev)
	assert.Len(t, hourSegs, 50)

	var total float64
	for _, s := range hourSegs {
		total += s.DurationMinutes
	}
	assert.InDelta(t, ev.IntervalMinutes(), total, 1e-9)
}
