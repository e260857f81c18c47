package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/leowmjw/go-temporal-climate/pkg/series"
)

const (
	// Workflow IDs
	IngestionWorkflowIDPrefix = "station-"
	AnalysisWorkflowIDPrefix  = "analysis-"

	// Signal names
	ReadingSignalName = "reading-signal"

	// Activity names
	AppendReadingsActivityName = "append-readings"
	LoadReadingsActivityName   = "load-readings"
	AnalyzeSeriesActivityName  = "analyze-series"
	RenderReportActivityName   = "render-report"

	// Default values
	DefaultContinueAsNewThreshold = 1000 // readings before ContinueAsNew
)

// ReadingSignal carries a batch of raw JSON temperature readings
type ReadingSignal struct {
	Readings [][]byte `json:"readings"`
}

// AnalysisRequest describes one analysis run over a station's series.
// When Dataset is set the request carries its own data and the stored
// readings are not consulted.
type AnalysisRequest struct {
	SeriesID string           `json:"series_id"`
	Window   int              `json:"window,omitempty"` // 0 means series.DefaultWindow
	Sigma    float64          `json:"sigma,omitempty"`  // 0 means window/6
	Stats    []string         `json:"stats,omitempty"`  // extra reductions: stddev, variance, median
	Dataset  *series.RawTable `json:"dataset,omitempty"`
}

// AnalysisResult is the full output of an analysis run.
type AnalysisResult struct {
	Metadata series.Metadata    `json:"metadata"`
	Summary  series.Summary     `json:"summary"`
	Smoothed series.Series      `json:"smoothed"`
	MeanLine series.Series      `json:"mean_line"`
	Stats    map[string]float64 `json:"stats,omitempty"`
	Report   string             `json:"report,omitempty"`
}

// IngestionWorkflow accumulates readings for a single station.
func IngestionWorkflow(ctx workflow.Context, stationID string) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting ingestion workflow", "stationID", stationID)

	readingCount := 0
	signalChan := workflow.GetSignalChannel(ctx, ReadingSignalName)

	for {
		var signal ReadingSignal
		signalChan.Receive(ctx, &signal)

		logger.Info("Received readings", "count", len(signal.Readings))

		ao := workflow.ActivityOptions{
			ScheduleToCloseTimeout: 30 * time.Second,
			RetryPolicy: &temporal.RetryPolicy{
				MaximumAttempts: 3,
			},
		}
		ctx = workflow.WithActivityOptions(ctx, ao)

		err := workflow.ExecuteActivity(ctx, AppendReadingsActivityName, stationID, signal.Readings).Get(ctx, nil)
		if err != nil {
			logger.Error("Failed to append readings", "error", err)
			// Keep accepting later batches rather than failing the workflow
			continue
		}

		readingCount += len(signal.Readings)

		// Avoid unbounded history
		if readingCount >= DefaultContinueAsNewThreshold {
			logger.Info("Continuing as new", "readingCount", readingCount)
			return workflow.NewContinueAsNewError(ctx, IngestionWorkflow, stationID)
		}
	}
}

// AnalysisWorkflow loads a station's readings, analyzes them and renders the
// report. Requests carrying an inline dataset skip the load step.
func AnalysisWorkflow(ctx workflow.Context, request AnalysisRequest) (*AnalysisResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting analysis workflow", "seriesID", request.SeriesID)

	ao := workflow.ActivityOptions{
		ScheduleToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var readings [][]byte
	if request.Dataset == nil {
		err := workflow.ExecuteActivity(ctx, LoadReadingsActivityName, request.SeriesID).Get(ctx, &readings)
		if err != nil {
			return nil, fmt.Errorf("failed to load readings: %w", err)
		}
		logger.Info("Loaded readings", "seriesID", request.SeriesID, "count", len(readings))
	}

	var result *AnalysisResult
	err := workflow.ExecuteActivity(ctx, AnalyzeSeriesActivityName, request, readings).Get(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze series: %w", err)
	}

	var report string
	err = workflow.ExecuteActivity(ctx, RenderReportActivityName, *result).Get(ctx, &report)
	if err != nil {
		// The report is decoration; the computed values still stand
		logger.Warn("Failed to render report", "error", err)
	} else {
		result.Report = report
	}

	logger.Info("Analysis completed", "seriesID", request.SeriesID,
		"min", result.Summary.Min, "max", result.Summary.Max, "mean", result.Summary.Mean)
	return result, nil
}

// Utility functions for workflow IDs

// GenerateIngestionWorkflowID creates a workflow ID for a station's ingestion
func GenerateIngestionWorkflowID(stationID string) string {
	return IngestionWorkflowIDPrefix + stationID
}

// GenerateAnalysisWorkflowID creates a workflow ID for an analysis run
func GenerateAnalysisWorkflowID(seriesID string) string {
	return fmt.Sprintf("%s%s-%d", AnalysisWorkflowIDPrefix, seriesID, time.Now().UnixNano())
}
