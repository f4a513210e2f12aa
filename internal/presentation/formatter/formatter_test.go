package formatter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	buf := new(bytes.Buffer)
	io.Copy(buf, r)
	os.Stdout = old

	require.NoError(t, fnErr)
	return buf.String()
}

func sampleDailyReport() *DailyReport {
	return &DailyReport{
		From:         "2024-01-10",
		To:           "2024-01-12",
		BoundaryHour: 0,
		Rows: []DailyRow{
			{Date: "2024-01-10", Category: "Sleep", Minutes: 480, Count: 3},
			{Date: "2024-01-11", Category: "Sleep", Minutes: 450, Count: 2},
			{Date: "2024-01-11", Category: "Feed", Minutes: 90, Count: 6},
		},
		Means: []MeanRow{
			{Category: "Feed", MeanMinutes: 90, Periods: 1},
			{Category: "Sleep", MeanMinutes: 465, Periods: 2},
		},
		Quality: QualitySummary{TotalRows: 12, Accepted: 11, MalformedTimestamp: 1},
	}
}

func sampleSimilarityReport() *SimilarityReport {
	return &SimilarityReport{
		KeyCategory:      "Sleep",
		CurrentCycle:     "2024-01-12",
		TodayValue:       350,
		ToleranceMinutes: 60,
		CutoffMinutes:    540,
		Records: []SimilarityRow{
			{CycleDate: "2024-01-08", KeyCategoryTotal: 360, Difference: 10},
			{CycleDate: "2024-01-05", KeyCategoryTotal: 300, Difference: 50},
		},
		Stats: []ProjectionRow{
			{Category: "Feed", MinMinutes: 0, MeanMinutes: 15, MaxMinutes: 30},
			{Category: "Sleep", MinMinutes: 160, MeanMinutes: 180, MaxMinutes: 200},
		},
		Remaining: []RemainingRow{
			{CycleDate: "2024-01-08", Start: "15:00", End: "16:30", Category: "Sleep", Minutes: 90},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    interface{}
		wantErr bool
	}{
		{format: "table", want: &TableFormatter{}},
		{format: "", want: &TableFormatter{}},
		{format: "csv", want: &CSVFormatter{}},
		{format: "json", want: &JSONFormatter{}},
		{format: "summary", want: &SummaryFormatter{}},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			f, err := New(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestCSVFormatterDaily(t *testing.T) {
	f := NewCSVFormatter()
	out := captureStdout(t, func() error { return f.Daily(sampleDailyReport()) })

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// The blank separator record is skipped by the reader, so we get
	// both section headers plus their rows back to back.
	require.Len(t, records, 8)
	assert.Equal(t, []string{"date", "category", "minutes", "events"}, records[0])
	assert.Equal(t, []string{"2024-01-10", "Sleep", "480.0", "3"}, records[1])
	assert.Equal(t, []string{"category", "mean_minutes_per_day", "days"}, records[4])
	assert.Equal(t, []string{"Sleep", "465.0", "2"}, records[6])
}

func TestCSVFormatterHeatmap(t *testing.T) {
	f := NewCSVFormatter()
	report := &HeatmapReport{From: "2024-01-10", To: "2024-01-12"}
	row := HeatmapRow{Category: "Sleep"}
	row.Minutes[0] = 60
	row.Minutes[23] = 30.5
	report.Rows = append(report.Rows, row)

	out := captureStdout(t, func() error { return f.Heatmap(report) })

	reader := csv.NewReader(strings.NewReader(out))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[0], 25)
	assert.Equal(t, "h00", records[0][1])
	assert.Equal(t, "h23", records[0][24])
	assert.Equal(t, "Sleep", records[1][0])
	assert.Equal(t, "60.0", records[1][1])
	assert.Equal(t, "30.5", records[1][24])
}

func TestCSVFormatterSimilarity(t *testing.T) {
	f := NewCSVFormatter()
	out := captureStdout(t, func() error { return f.Similarity(sampleSimilarityReport()) })

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 8)
	assert.Equal(t, []string{"cycle_date", "total_at_cutoff", "difference"}, records[0])
	assert.Equal(t, []string{"2024-01-08", "360.0", "10.0"}, records[1])
	assert.Equal(t, []string{"category", "min_minutes", "mean_minutes", "max_minutes"}, records[3])
	assert.Equal(t, []string{"cycle_date", "start", "end", "category", "minutes"}, records[6])
}

func TestJSONFormatterDaily(t *testing.T) {
	f := NewJSONFormatter()
	out := captureStdout(t, func() error { return f.Daily(sampleDailyReport()) })

	var decoded DailyReport
	require.NoError(t, sonic.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "2024-01-10", decoded.From)
	assert.Len(t, decoded.Rows, 3)
	assert.Equal(t, 465.0, decoded.Means[1].MeanMinutes)
	assert.Equal(t, 1, decoded.Quality.MalformedTimestamp)
}

func TestJSONFormatterSimilarity(t *testing.T) {
	f := NewJSONFormatter()
	out := captureStdout(t, func() error { return f.Similarity(sampleSimilarityReport()) })

	var decoded SimilarityReport
	require.NoError(t, sonic.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Sleep", decoded.KeyCategory)
	require.Len(t, decoded.Records, 2)
	assert.Equal(t, 10.0, decoded.Records[0].Difference)
	assert.Len(t, decoded.Stats, 2)
}

func TestTableFormatterDaily(t *testing.T) {
	f := NewTableFormatter()
	out := captureStdout(t, func() error { return f.Daily(sampleDailyReport()) })

	assert.Contains(t, out, "Sleep")
	assert.Contains(t, out, "2024-01-10")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestTableFormatterHeatmapEmpty(t *testing.T) {
	f := NewTableFormatter()
	out := captureStdout(t, func() error {
		return f.Heatmap(&HeatmapReport{From: "2024-01-10", To: "2024-01-12"})
	})
	assert.Contains(t, out, "No data.")
}

func TestTableFormatterSimilarityEmpty(t *testing.T) {
	f := NewTableFormatter()
	report := sampleSimilarityReport()
	report.Records = nil
	out := captureStdout(t, func() error { return f.Similarity(report) })
	assert.Contains(t, out, "No similar cycles found.")
}

func TestSummaryFormatterDaily(t *testing.T) {
	f := NewSummaryFormatter()
	out := captureStdout(t, func() error { return f.Daily(sampleDailyReport()) })

	assert.Contains(t, out, "Sleep")
	assert.Contains(t, out, "465")
	assert.Contains(t, out, "total tracked minutes per day")
	assert.Contains(t, out, "Data quality: 1 rows excluded")
}

func TestSummaryFormatterSimilarityEmpty(t *testing.T) {
	f := NewSummaryFormatter()
	report := sampleSimilarityReport()
	report.Records = nil
	out := captureStdout(t, func() error { return f.Similarity(report) })
	assert.Contains(t, out, "No similar cycles within tolerance.")
}
