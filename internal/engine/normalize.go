// Package engine implements the time-bucketing, cycle-assignment,
// boundary-splitting and similarity/projection computations. Every
// function is pure: it reads an immutable event snapshot plus explicit
// parameters and returns a new derived collection.
package engine

import (
	"fmt"
	"time"

	"github.com/bmoura/tempotrack/internal/core/model"
)

// Layouts carrying explicit zone information; values parsed with these
// are converted into the configured zone.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
}

// Layouts without zone information; values parsed with these are
// interpreted as local time in the configured zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// Normalize parses a raw timestamp into an instant in loc. Zoneless
// values are read as wall-clock time in loc; zoned values are converted.
// A value that parses under no known layout fails with
// model.ErrMalformedTimestamp. A zoneless wall-clock time that does not
// exist in loc (daylight-saving gap) is treated as malformed and dropped
// rather than silently shifted.
func Normalize(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc), nil
		}
	}

	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}
		if !wallClockMatches(t, raw, layout) {
			return time.Time{}, fmt.Errorf("%w: %q does not exist in %s", model.ErrMalformedTimestamp, raw, loc)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", model.ErrMalformedTimestamp, raw)
}

// wallClockMatches reports whether the parsed instant still reads back
// as the written wall-clock value. ParseInLocation normalizes instants
// inside a DST gap forward; such values round-trip differently.
func wallClockMatches(t time.Time, raw, layout string) bool {
	ref, err := time.Parse(layout, raw) // wall clock, zone-agnostic
	if err != nil {
		return false
	}
	return t.Year() == ref.Year() && t.Month() == ref.Month() && t.Day() == ref.Day() &&
		t.Hour() == ref.Hour() && t.Minute() == ref.Minute() && t.Second() == ref.Second()
}
