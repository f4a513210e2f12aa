// Package parser turns a raw activity CSV snapshot into normalized
// events. Record-level problems are isolated: a bad row is skipped and
// counted, never fatal to the batch.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bmoura/tempotrack/internal/core/constants"
	"github.com/bmoura/tempotrack/internal/core/model"
	"github.com/bmoura/tempotrack/internal/engine"
	"github.com/bmoura/tempotrack/internal/util"
)

// Required CSV columns after header normalization.
const (
	colStarted    = "time_started"
	colEnded      = "time_ended"
	colCategories = "categories"
	colDuration   = "duration_minutes"
	colActivity   = "activity_name"
)

// Parser converts raw CSV bytes into events in a configured timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a Parser that expresses all instants in loc.
func NewParser(loc *time.Location) *Parser {
	return &Parser{location: loc}
}

// Parse reads the whole CSV snapshot. Rows that cannot be used are
// skipped and counted in the returned QualityReport; only a structurally
// unreadable file is an error.
func (p *Parser) Parse(data []byte) ([]model.Event, model.QualityReport, error) {
	var report model.QualityReport

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, report, fmt.Errorf("reading CSV header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, report, err
	}

	var events []model.Event
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.TotalRows++
			util.LogDebugf("Skip unreadable CSV row %d: %v", line, err)
			continue
		}

		report.TotalRows++
		ev, err := p.parseRow(row, columns)
		if err != nil {
			countFailure(&report, err)
			util.LogDebugf("Skip CSV row %d: %v", line, err)
			continue
		}

		if diverges(ev) {
			report.DurationMismatch++
			util.LogDebugf("Row %d: authored duration %.1fm diverges from interval %.1fm",
				line, ev.DurationMinutes, ev.IntervalMinutes())
		}

		report.Accepted++
		events = append(events, ev)
	}

	util.LogDebugf("Parsed %d rows: %d accepted, %d excluded",
		report.TotalRows, report.Accepted, report.Excluded())
	return events, report, nil
}

// mapColumns normalizes header names the way the source app exports
// them (lowercased, spaces replaced by underscores) and locates the
// required columns.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		columns[normalized] = i
	}

	for _, required := range []string{colStarted, colEnded, colCategories, colDuration} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}
	return columns, nil
}

func (p *Parser) parseRow(row []string, columns map[string]int) (model.Event, error) {
	category := strings.TrimSpace(field(row, columns, colCategories))
	if category == "" {
		return model.Event{}, model.ErrMissingCategory
	}

	start, err := engine.Normalize(strings.TrimSpace(field(row, columns, colStarted)), p.location)
	if err != nil {
		return model.Event{}, fmt.Errorf("start: %w", err)
	}
	end, err := engine.Normalize(strings.TrimSpace(field(row, columns, colEnded)), p.location)
	if err != nil {
		return model.Event{}, fmt.Errorf("end: %w", err)
	}

	if end.Before(start) {
		return model.Event{}, fmt.Errorf("%w: end %s before start %s",
			model.ErrInvertedInterval, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	ev := model.Event{
		Start:    start,
		End:      end,
		Category: category,
		Label:    strings.TrimSpace(field(row, columns, colActivity)),
	}

	// The authored duration is kept when supplied; a missing or
	// unparseable value falls back to the timestamp interval, matching
	// the source app's coerce-then-zero cleanup.
	raw := strings.TrimSpace(field(row, columns, colDuration))
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil || minutes < 0 {
		minutes = 0
	}
	if minutes == 0 {
		minutes = ev.IntervalMinutes()
	}
	ev.DurationMinutes = minutes

	return ev, nil
}

func field(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func countFailure(report *model.QualityReport, err error) {
	switch {
	case errors.Is(err, model.ErrMissingCategory):
		report.MissingCategory++
	case errors.Is(err, model.ErrInvertedInterval):
		report.InvertedInterval++
	default:
		report.MalformedTimestamp++
	}
}

func diverges(ev model.Event) bool {
	delta := ev.DurationMinutes - ev.IntervalMinutes()
	if delta < 0 {
		delta = -delta
	}
	return delta > constants.DurationMismatchToleranceMinutes
}
