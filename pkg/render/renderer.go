// Package render is the presentation boundary for series analysis: it
// consumes computed values and draws an annotated textual chart. The analysis
// core never imports this package.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/leowmjw/go-temporal-climate/pkg/series"
)

// Renderer draws a report for an analyzed series.
type Renderer interface {
	Render(w io.Writer, meta series.Metadata, sum series.Summary, smoothed, meanLine series.Series) error
}

// ChartConfig carries the decoration that used to live as module-scope
// constants: legend labels, units and axis captions.
type ChartConfig struct {
	Title          string
	Unit           string
	XLabel         string
	SmoothedLegend string
	MeanLegend     string
	SparkWidth     int // maximum sparkline columns; 0 disables the sparkline
}

// DefaultChartConfig returns the decoration used by the sample charts.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:          "Daily temperature",
		Unit:           "°C",
		XLabel:         "day of year",
		SmoothedLegend: "smoothed (Gaussian)",
		MeanLegend:     "mean",
		SparkWidth:     73,
	}
}

// TextRenderer renders the analysis as a plain-text report with a sparkline
// of the smoothed series.
type TextRenderer struct {
	cfg ChartConfig
}

// NewTextRenderer creates a text renderer with the given decoration.
func NewTextRenderer(cfg ChartConfig) *TextRenderer {
	return &TextRenderer{cfg: cfg}
}

var _ Renderer = (*TextRenderer)(nil)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Render writes the annotated report.
func (r *TextRenderer) Render(w io.Writer, meta series.Metadata, sum series.Summary, smoothed, meanLine series.Series) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — %s %d", r.cfg.Title, meta.City, meta.Year)
	if meta.Source != "" {
		fmt.Fprintf(&b, " (%s)", meta.Source)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  min:  %6.2f%s at %s %g\n", sum.Min, r.cfg.Unit, r.cfg.XLabel, dayAt(smoothed, sum.MinIndex))
	fmt.Fprintf(&b, "  max:  %6.2f%s at %s %g\n", sum.Max, r.cfg.Unit, r.cfg.XLabel, dayAt(smoothed, sum.MaxIndex))
	fmt.Fprintf(&b, "  %s: %6.2f%s\n", r.cfg.MeanLegend, sum.Mean, r.cfg.Unit)

	if r.cfg.SparkWidth > 0 && smoothed.Len() > 0 {
		fmt.Fprintf(&b, "  %s:\n", r.cfg.SmoothedLegend)
		fmt.Fprintf(&b, "  %s\n", sparkline(smoothed.Values, r.cfg.SparkWidth))
	}

	if meanLine.Len() == 2 {
		fmt.Fprintf(&b, "  %s line: %g..%g @ %.2f%s\n",
			r.cfg.MeanLegend, meanLine.Days[0], meanLine.Days[1], meanLine.Values[0], r.cfg.Unit)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func dayAt(s series.Series, index int) float64 {
	if index < 0 || index >= len(s.Days) {
		return float64(index)
	}
	return s.Days[index]
}

// sparkline maps values onto block characters, downsampling to at most width
// columns by striding.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	stride := 1
	if len(values) > width {
		stride = (len(values) + width - 1) / width
	}

	var b strings.Builder
	for i := 0; i < len(values); i += stride {
		level := 0
		if max > min {
			level = int((values[i] - min) / (max - min) * float64(len(sparkLevels)-1))
		}
		b.WriteRune(sparkLevels[level])
	}

	return b.String()
}
