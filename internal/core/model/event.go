package model

import (
	"time"
)

// Event is one immutable activity record after normalization. Start and
// End are always expressed in the configured timezone; the engine never
// mutates an event, it only derives new collections from them.
type Event struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Category string    `json:"category"`
	// DurationMinutes is the authored duration from the source record.
	// It is authoritative for whole-event aggregation and is allowed to
	// diverge from the timestamp interval; segmentation always works on
	// the timestamps.
	DurationMinutes float64 `json:"durationMinutes"`
	Label           string  `json:"label,omitempty"`
}

// IntervalMinutes returns the length of the [Start, End) interval in
// minutes. Zero-length events yield zero.
func (e Event) IntervalMinutes() float64 {
	return e.End.Sub(e.Start).Minutes()
}

// BucketKey identifies one aggregation bucket. For hour-width buckets
// Hour is the hour-of-day of the bucket start; for cycle-day buckets it
// is the cycle boundary hour.
type BucketKey struct {
	Date Date `json:"date"`
	Hour int  `json:"hour"`
}

func (k BucketKey) Before(o BucketKey) bool {
	if !k.Date.Equal(o.Date) {
		return k.Date.Before(o.Date)
	}
	return k.Hour < o.Hour
}

// Segment is a sub-interval of an event wholly inside one bucket.
// Summing a source event's segment durations reproduces the event's
// timestamp interval; no segment spans more than one bucket.
type Segment struct {
	Bucket          BucketKey `json:"bucket"`
	Category        string    `json:"category"`
	DurationMinutes float64   `json:"durationMinutes"`
}

// SimilarityRecord describes how close one historical cycle's
// key-category cumulative total (up to the cutoff instant) came to
// today's value.
type SimilarityRecord struct {
	CycleDate        Date    `json:"cycleDate"`
	KeyCategoryTotal float64 `json:"keyCategoryTotal"`
	Difference       float64 `json:"difference"`
}

// ProjectionStat is the min/mean/max of one category's remaining
// duration across the set of similar cycles.
type ProjectionStat struct {
	Category    string  `json:"category"`
	MinMinutes  float64 `json:"minMinutes"`
	MeanMinutes float64 `json:"meanMinutes"`
	MaxMinutes  float64 `json:"maxMinutes"`
}

// RemainingInterval is one post-cutoff event of a similar cycle, kept
// with its originating cycle date for multi-row timeline display.
type RemainingInterval struct {
	CycleDate       Date      `json:"cycleDate"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Category        string    `json:"category"`
	Label           string    `json:"label,omitempty"`
	DurationMinutes float64   `json:"durationMinutes"`
}

// QualityReport counts records the ingest boundary excluded or flagged.
// Record-level failures never abort the batch; they land here so the
// caller can surface data quality alongside the results.
type QualityReport struct {
	TotalRows          int `json:"totalRows"`
	Accepted           int `json:"accepted"`
	MalformedTimestamp int `json:"malformedTimestamp"`
	MissingCategory    int `json:"missingCategory"`
	InvertedInterval   int `json:"invertedInterval"`
	// DurationMismatch counts accepted records whose authored duration
	// diverges from the timestamp interval by more than a minute. They
	// stay in the dataset; the mismatch is a data-quality signal only.
	DurationMismatch int `json:"durationMismatch"`
}

// Excluded returns the number of rows dropped at the ingest boundary.
func (q QualityReport) Excluded() int {
	return q.MalformedTimestamp + q.MissingCategory + q.InvertedInterval
}

// Merge adds the counts of o into q.
func (q *QualityReport) Merge(o QualityReport) {
	q.TotalRows += o.TotalRows
	q.Accepted += o.Accepted
	q.MalformedTimestamp += o.MalformedTimestamp
	q.MissingCategory += o.MissingCategory
	q.InvertedInterval += o.InvertedInterval
	q.DurationMismatch += o.DurationMismatch
}
