package formatter

import (
	"os"

	"github.com/bytedance/sonic"
)

// JSONFormatter writes the full report structure as indented JSON.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Daily(r *DailyReport) error {
	return writeJSON(r)
}

func (f *JSONFormatter) Heatmap(r *HeatmapReport) error {
	return writeJSON(r)
}

func (f *JSONFormatter) Similarity(r *SimilarityReport) error {
	return writeJSON(r)
}

func writeJSON(v interface{}) error {
	encoder := sonic.ConfigDefault.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
