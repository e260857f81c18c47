package render

import (
	"strings"
	"testing"

	"github.com/leowmjw/go-temporal-climate/pkg/series"
)

func testInputs() (series.Metadata, series.Summary, series.Series, series.Series) {
	meta := series.Metadata{City: "Berlin", Year: 2024, Source: "DWD"}
	s := series.Series{
		Days:   []float64{0, 1, 2, 3, 4},
		Values: []float64{0, 10, 20, 10, 0},
	}
	sum, _ := series.Summarize(s)
	line, _ := series.MeanLine(s)
	return meta, sum, s, line
}

func TestTextRendererAnnotations(t *testing.T) {
	meta, sum, smoothed, line := testInputs()

	var out strings.Builder
	r := NewTextRenderer(DefaultChartConfig())
	if err := r.Render(&out, meta, sum, smoothed, line); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	report := out.String()
	for _, want := range []string{"Berlin", "2024", "DWD", "20.00", "8.00", "mean"} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q:\n%s", want, report)
		}
	}
}

func TestTextRendererSparklineDisabled(t *testing.T) {
	meta, sum, smoothed, line := testInputs()

	cfg := DefaultChartConfig()
	cfg.SparkWidth = 0

	var out strings.Builder
	if err := NewTextRenderer(cfg).Render(&out, meta, sum, smoothed, line); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.ContainsRune(out.String(), '▁') || strings.ContainsRune(out.String(), '█') {
		t.Errorf("Expected no sparkline in report:\n%s", out.String())
	}
}

func TestSparklineDownsamples(t *testing.T) {
	values := make([]float64, 365)
	for i := range values {
		values[i] = float64(i % 30)
	}

	line := sparkline(values, 73)
	if len([]rune(line)) > 73 {
		t.Errorf("Expected at most 73 columns, got %d", len([]rune(line)))
	}
}

func TestSparklineConstant(t *testing.T) {
	line := sparkline([]float64{5, 5, 5}, 10)
	if line != "▁▁▁" {
		t.Errorf("Constant series should render lowest level, got %q", line)
	}
}
