package formatter

import (
	"fmt"

	"github.com/bmoura/tempotrack/internal/core/constants"
)

// DailyReport is the per-cycle aggregate view handed to a formatter.
type DailyReport struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	BoundaryHour int            `json:"boundaryHour"`
	Rows         []DailyRow     `json:"rows"`
	Means        []MeanRow      `json:"means"`
	Periods      []PeriodRow    `json:"periods,omitempty"`
	Quality      QualitySummary `json:"quality"`
}

type DailyRow struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Minutes  float64 `json:"minutes"`
	Count    int     `json:"count"`
}

type MeanRow struct {
	Category    string  `json:"category"`
	MeanMinutes float64 `json:"meanMinutes"`
	Periods     int     `json:"periods"`
}

type PeriodRow struct {
	Category      string  `json:"category"`
	Period        string  `json:"period"`
	Count         int     `json:"count"`
	MinMinutes    float64 `json:"minMinutes"`
	MedianMinutes float64 `json:"medianMinutes"`
	MeanMinutes   float64 `json:"meanMinutes"`
	MaxMinutes    float64 `json:"maxMinutes"`
}

type QualitySummary struct {
	TotalRows          int `json:"totalRows"`
	Accepted           int `json:"accepted"`
	MalformedTimestamp int `json:"malformedTimestamp"`
	MissingCategory    int `json:"missingCategory"`
	InvertedInterval   int `json:"invertedInterval"`
	DurationMismatch   int `json:"durationMismatch"`
}

// HeatmapReport is the segmented minutes-per-hour view.
type HeatmapReport struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Rows []HeatmapRow `json:"rows"`
}

type HeatmapRow struct {
	Category string                         `json:"category"`
	Minutes  [constants.HoursPerDay]float64 `json:"minutes"`
}

// SimilarityReport bundles the similar-cycle table, the remainder
// projection and the remaining-interval timeline.
type SimilarityReport struct {
	KeyCategory      string          `json:"keyCategory"`
	CurrentCycle     string          `json:"currentCycle"`
	TodayValue       float64         `json:"todayValue"`
	ToleranceMinutes float64         `json:"toleranceMinutes"`
	CutoffMinutes    float64         `json:"cutoffMinutes"`
	Records          []SimilarityRow `json:"records"`
	Stats            []ProjectionRow `json:"stats"`
	Remaining        []RemainingRow  `json:"remaining"`
}

type SimilarityRow struct {
	CycleDate        string  `json:"cycleDate"`
	KeyCategoryTotal float64 `json:"keyCategoryTotal"`
	Difference       float64 `json:"difference"`
}

type ProjectionRow struct {
	Category    string  `json:"category"`
	MinMinutes  float64 `json:"minMinutes"`
	MeanMinutes float64 `json:"meanMinutes"`
	MaxMinutes  float64 `json:"maxMinutes"`
}

type RemainingRow struct {
	CycleDate string  `json:"cycleDate"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Category  string  `json:"category"`
	Label     string  `json:"label,omitempty"`
	Minutes   float64 `json:"minutes"`
}

// Formatter renders the three report shapes in one output format.
type Formatter interface {
	Daily(r *DailyReport) error
	Heatmap(r *HeatmapReport) error
	Similarity(r *SimilarityReport) error
}

// New returns the formatter for the named output format.
func New(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (expected table, csv, json, summary)", format)
	}
}

func formatMinutes(minutes float64) string {
	return fmt.Sprintf("%.0f", minutes)
}

func formatMinutes1(minutes float64) string {
	return fmt.Sprintf("%.1f", minutes)
}
