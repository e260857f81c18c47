package temporal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdktemporal "go.temporal.io/sdk/temporal"

	"github.com/leowmjw/go-temporal-climate/pkg/render"
	"github.com/leowmjw/go-temporal-climate/pkg/series"
)

// Activities interface defines all the activities used by workflows
type Activities interface {
	AppendReadingsActivity(ctx context.Context, stationID string, readings [][]byte) error
	LoadReadingsActivity(ctx context.Context, stationID string) ([][]byte, error)
	AnalyzeSeriesActivity(ctx context.Context, request AnalysisRequest, readings [][]byte) (*AnalysisResult, error)
	RenderReportActivity(ctx context.Context, result AnalysisResult) (string, error)
}

// StorageService defines the interface for reading storage
type StorageService interface {
	AppendReadings(ctx context.Context, stationID string, readings [][]byte) error
	LoadReadings(ctx context.Context, stationID string) ([][]byte, error)
}

// ActivitiesImpl implements the Activities interface
type ActivitiesImpl struct {
	logger   *slog.Logger
	storage  StorageService
	renderer render.Renderer
}

// NewActivitiesImpl creates a new activities implementation
func NewActivitiesImpl(logger *slog.Logger, storage StorageService, renderer render.Renderer) *ActivitiesImpl {
	return &ActivitiesImpl{
		logger:   logger,
		storage:  storage,
		renderer: renderer,
	}
}

// AppendReadingsActivity validates and persists a batch of raw readings
func (a *ActivitiesImpl) AppendReadingsActivity(ctx context.Context, stationID string, readings [][]byte) error {
	a.logger.Info("Appending readings", "stationID", stationID, "count", len(readings))

	// Reject malformed batches before they reach storage
	if _, err := series.ParseReadings(readings); err != nil {
		a.logger.Error("Rejected malformed readings", "stationID", stationID, "error", err)
		return nonRetryable(err)
	}

	if err := a.storage.AppendReadings(ctx, stationID, readings); err != nil {
		a.logger.Error("Failed to append to storage", "error", err)
		return fmt.Errorf("failed to append to storage: %w", err)
	}

	a.logger.Info("Successfully appended readings", "stationID", stationID, "count", len(readings))
	return nil
}

// LoadReadingsActivity loads all stored readings for a station
func (a *ActivitiesImpl) LoadReadingsActivity(ctx context.Context, stationID string) ([][]byte, error) {
	a.logger.Info("Loading readings", "stationID", stationID)

	readings, err := a.storage.LoadReadings(ctx, stationID)
	if err != nil {
		a.logger.Error("Failed to load readings", "error", err)
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}

	a.logger.Info("Successfully loaded readings", "stationID", stationID, "count", len(readings))
	return readings, nil
}

// AnalyzeSeriesActivity runs the pure analysis over the request's data
func (a *ActivitiesImpl) AnalyzeSeriesActivity(ctx context.Context, request AnalysisRequest, readings [][]byte) (*AnalysisResult, error) {
	a.logger.Info("Analyzing series", "seriesID", request.SeriesID,
		"window", request.Window, "readingCount", len(readings))

	result, err := RunAnalysis(request, readings)
	if err != nil {
		a.logger.Error("Analysis failed", "seriesID", request.SeriesID, "error", err)
		return nil, nonRetryable(err)
	}

	return result, nil
}

// RenderReportActivity renders the textual report for an analysis result
func (a *ActivitiesImpl) RenderReportActivity(ctx context.Context, result AnalysisResult) (string, error) {
	var buf bytes.Buffer
	err := a.renderer.Render(&buf, result.Metadata, result.Summary, result.Smoothed, result.MeanLine)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// RunAnalysis is the pure load → summarize → smooth → mean-line pipeline
// shared by the activity and the CLI's local mode.
func RunAnalysis(request AnalysisRequest, readings [][]byte) (*AnalysisResult, error) {
	table, err := requestTable(request, readings)
	if err != nil {
		return nil, err
	}

	s, meta, err := series.Load(table)
	if err != nil {
		return nil, err
	}

	summary, err := series.Summarize(s)
	if err != nil {
		return nil, err
	}

	window := request.Window
	if window == 0 {
		window = series.DefaultWindow
		// Small inline datasets cannot fit the default window
		if window > s.Len() {
			window = s.Len()
			if window%2 == 0 {
				window--
			}
		}
	}

	smoothed, err := series.Smooth(s, window, &series.SmoothOptions{Sigma: request.Sigma})
	if err != nil {
		return nil, err
	}

	meanLine, err := series.MeanLine(s)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		Metadata: meta,
		Summary:  summary,
		Smoothed: smoothed,
		MeanLine: meanLine,
	}

	if len(request.Stats) > 0 {
		result.Stats = make(map[string]float64, len(request.Stats))
		for _, name := range request.Stats {
			switch name {
			case "stddev":
				result.Stats[name] = s.StdDev()
			case "variance":
				result.Stats[name] = s.Variance()
			case "median":
				result.Stats[name] = s.Median()
			default:
				return nil, fmt.Errorf("%w: unknown stat %q", series.ErrMalformedInput, name)
			}
		}
	}

	return result, nil
}

// requestTable resolves the raw table for a request: either the inline
// dataset or the parsed stored readings.
func requestTable(request AnalysisRequest, readings [][]byte) (series.RawTable, error) {
	if request.Dataset != nil {
		return *request.Dataset, nil
	}

	table, err := series.ParseReadings(readings)
	if err != nil {
		return series.RawTable{}, err
	}

	// Ingested readings carry no metadata of their own
	table.City = request.SeriesID
	table.Source = "ingest"
	return table, nil
}

// nonRetryable marks deterministic validation failures so the workflow's
// retry policy does not replay them.
func nonRetryable(err error) error {
	if errors.Is(err, series.ErrMalformedInput) ||
		errors.Is(err, series.ErrEmptySeries) ||
		errors.Is(err, series.ErrInvalidWindow) {
		return sdktemporal.NewNonRetryableApplicationError(err.Error(), "ValidationError", err)
	}
	return err
}
