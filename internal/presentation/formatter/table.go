package formatter

import (
	"fmt"
	"strings"

	"github.com/bmoura/tempotrack/internal/util"
)

// TableFormatter renders reports as bordered terminal tables.
type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Daily(r *DailyReport) error {
	fmt.Printf("Totals per day (%s to %s, boundary %02dh)\n", r.From, r.To, r.BoundaryHour)
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []string{
			row.Date,
			row.Category,
			util.FormatMinutes(row.Minutes),
			fmt.Sprintf("%d", row.Count),
		})
	}
	printTable([]string{"Date", "Category", "Total", "Events"}, rows)

	fmt.Println()
	fmt.Println("Daily means (mean of per-day sums)")
	meanRows := make([][]string, 0, len(r.Means))
	for _, m := range r.Means {
		meanRows = append(meanRows, []string{
			m.Category,
			util.FormatHours(m.MeanMinutes),
			formatMinutes(m.MeanMinutes) + "m",
			fmt.Sprintf("%d", m.Periods),
		})
	}
	printTable([]string{"Category", "Mean/Day", "Minutes", "Days"}, meanRows)

	if len(r.Periods) > 0 {
		fmt.Println()
		fmt.Println("Duration spread by day period")
		periodRows := make([][]string, 0, len(r.Periods))
		for _, p := range r.Periods {
			periodRows = append(periodRows, []string{
				p.Category,
				p.Period,
				fmt.Sprintf("%d", p.Count),
				formatMinutes(p.MinMinutes),
				formatMinutes(p.MedianMinutes),
				formatMinutes1(p.MeanMinutes),
				formatMinutes(p.MaxMinutes),
			})
		}
		printTable([]string{"Category", "Period", "N", "Min", "Median", "Mean", "Max"}, periodRows)
	}

	printQuality(r.Quality)
	return nil
}

func (f *TableFormatter) Heatmap(r *HeatmapReport) error {
	fmt.Printf("Minutes per hour (%s to %s, boundary-split)\n", r.From, r.To)
	if len(r.Rows) == 0 {
		fmt.Println("No data.")
		return nil
	}

	maxMinutes := 0.0
	catWidth := len("Category")
	for _, row := range r.Rows {
		if w := util.GetDisplayWidth(row.Category); w > catWidth {
			catWidth = w
		}
		for _, m := range row.Minutes {
			if m > maxMinutes {
				maxMinutes = m
			}
		}
	}

	// The 24 hour cells need a fixed 96 columns; whatever terminal
	// width remains goes to the category column.
	if maxCat := util.TerminalWidth() - 24*4; catWidth > maxCat && maxCat >= len("Category") {
		catWidth = maxCat
	}

	// Hour axis header.
	var header strings.Builder
	header.WriteString(util.PadRight("Category", catWidth))
	for h := 0; h < 24; h++ {
		header.WriteString(util.PadLeft(fmt.Sprintf("%d", h), 4))
	}
	fmt.Println(header.String())

	for _, row := range r.Rows {
		var line strings.Builder
		line.WriteString(util.PadRight(row.Category, catWidth))
		for _, m := range row.Minutes {
			line.WriteString(" " + heatCell(m, maxMinutes))
		}
		fmt.Println(line.String())
	}
	return nil
}

func (f *TableFormatter) Similarity(r *SimilarityReport) error {
	fmt.Printf("Similar cycles for %q: today %sm at minute %s, tolerance %sm\n",
		r.KeyCategory, formatMinutes(r.TodayValue), formatMinutes(r.CutoffMinutes), formatMinutes(r.ToleranceMinutes))

	if len(r.Records) == 0 {
		fmt.Println("No similar cycles found.")
		return nil
	}

	recordRows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		recordRows = append(recordRows, []string{
			rec.CycleDate,
			formatMinutes(rec.KeyCategoryTotal),
			formatMinutes(rec.Difference),
		})
	}
	printTable([]string{"Cycle", "Total at cutoff", "Difference"}, recordRows)

	fmt.Println()
	fmt.Println("Projected remainder (across similar cycles)")
	statRows := make([][]string, 0, len(r.Stats))
	for _, s := range r.Stats {
		statRows = append(statRows, []string{
			s.Category,
			formatMinutes(s.MinMinutes),
			formatMinutes1(s.MeanMinutes),
			formatMinutes(s.MaxMinutes),
		})
	}
	printTable([]string{"Category", "Min", "Mean", "Max"}, statRows)

	if len(r.Remaining) > 0 {
		fmt.Println()
		fmt.Println("Remaining intervals")
		remRows := make([][]string, 0, len(r.Remaining))
		for _, rem := range r.Remaining {
			remRows = append(remRows, []string{
				rem.CycleDate,
				rem.Start,
				rem.End,
				rem.Category,
				util.FormatMinutes(rem.Minutes),
			})
		}
		printTable([]string{"Cycle", "Start", "End", "Category", "Duration"}, remRows)
	}
	return nil
}

func printQuality(q QualitySummary) {
	excluded := q.MalformedTimestamp + q.MissingCategory + q.InvertedInterval
	if excluded == 0 && q.DurationMismatch == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Data quality: %d of %d rows excluded (%d bad timestamps, %d missing categories, %d inverted intervals), %d duration mismatches\n",
		excluded, q.TotalRows, q.MalformedTimestamp, q.MissingCategory, q.InvertedInterval, q.DurationMismatch)
}

// printTable renders one bordered table, sizing each column to its
// widest cell.
func printTable(headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)

	printBorder(widths, "top")
	printRow(headers, widths)
	printBorder(widths, "middle")
	for _, row := range rows {
		printRow(row, widths)
	}
	printBorder(widths, "bottom")
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && util.GetDisplayWidth(cell) > widths[i] {
				widths[i] = util.GetDisplayWidth(cell)
			}
		}
	}
	return widths
}

func printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, width := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		fmt.Print(" " + util.PadRight(value, width) + " ")
		if i < len(widths)-1 {
			fmt.Print("│")
		}
	}
	fmt.Println("│")
}
