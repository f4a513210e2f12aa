package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVFormatter writes reports as CSV to stdout. Multi-table reports are
// emitted as sections separated by a blank record.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Daily(r *DailyReport) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"date", "category", "minutes", "events"}); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			row.Date,
			row.Category,
			formatMinutes1(row.Minutes),
			fmt.Sprintf("%d", row.Count),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{"category", "mean_minutes_per_day", "days"}); err != nil {
		return err
	}
	for _, m := range r.Means {
		record := []string{m.Category, formatMinutes1(m.MeanMinutes), fmt.Sprintf("%d", m.Periods)}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if len(r.Periods) > 0 {
		if err := w.Write([]string{}); err != nil {
			return err
		}
		if err := w.Write([]string{"category", "period", "count", "min_minutes", "median_minutes", "mean_minutes", "max_minutes"}); err != nil {
			return err
		}
		for _, p := range r.Periods {
			record := []string{
				p.Category,
				p.Period,
				fmt.Sprintf("%d", p.Count),
				formatMinutes1(p.MinMinutes),
				formatMinutes1(p.MedianMinutes),
				formatMinutes1(p.MeanMinutes),
				formatMinutes1(p.MaxMinutes),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *CSVFormatter) Heatmap(r *HeatmapReport) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := make([]string, 0, 25)
	header = append(header, "category")
	for h := 0; h < 24; h++ {
		header = append(header, fmt.Sprintf("h%02d", h))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range r.Rows {
		record := make([]string, 0, 25)
		record = append(record, row.Category)
		for _, m := range row.Minutes {
			record = append(record, formatMinutes1(m))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (f *CSVFormatter) Similarity(r *SimilarityReport) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"cycle_date", "total_at_cutoff", "difference"}); err != nil {
		return err
	}
	for _, rec := range r.Records {
		record := []string{rec.CycleDate, formatMinutes1(rec.KeyCategoryTotal), formatMinutes1(rec.Difference)}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{"category", "min_minutes", "mean_minutes", "max_minutes"}); err != nil {
		return err
	}
	for _, s := range r.Stats {
		record := []string{
			s.Category,
			formatMinutes1(s.MinMinutes),
			formatMinutes1(s.MeanMinutes),
			formatMinutes1(s.MaxMinutes),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{"cycle_date", "start", "end", "category", "minutes"}); err != nil {
		return err
	}
	for _, rem := range r.Remaining {
		record := []string{rem.CycleDate, rem.Start, rem.End, rem.Category, formatMinutes1(rem.Minutes)}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
