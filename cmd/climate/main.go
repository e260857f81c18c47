package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/leowmjw/go-temporal-climate/pkg/hcl"
	climatehttp "github.com/leowmjw/go-temporal-climate/pkg/http"
	"github.com/leowmjw/go-temporal-climate/pkg/render"
	"github.com/leowmjw/go-temporal-climate/pkg/series"
	"github.com/leowmjw/go-temporal-climate/pkg/temporal"
)

func main() {
	// Set up logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Define command line flags
	var (
		path        string
		csvPath     string
		seriesID    string
		city        string
		year        int
		source      string
		window      int
		sigma       float64
		stats       string
		local       bool
		address     string
		namespace   string
		displayJSON bool
	)

	flag.StringVar(&path, "path", "", "Path to HCL analysis file or directory")
	flag.StringVar(&csvPath, "csv", "", "Path to a day,temp_c CSV dataset")
	flag.StringVar(&seriesID, "series", "local", "Series ID for the analysis")
	flag.StringVar(&city, "city", "", "City metadata for CSV datasets")
	flag.IntVar(&year, "year", 0, "Year metadata for CSV datasets")
	flag.StringVar(&source, "source", "", "Source metadata for CSV datasets")
	flag.IntVar(&window, "window", 0, "Smoothing window (odd; 0 uses the default)")
	flag.Float64Var(&sigma, "sigma", 0, "Gaussian sigma (0 uses window/6)")
	flag.StringVar(&stats, "stats", "", "Comma-separated extra stats (stddev, variance, median)")
	flag.BoolVar(&local, "local", false, "Run the analysis in-process without Temporal")
	flag.StringVar(&address, "address", "localhost:7233", "Address of Temporal server")
	flag.StringVar(&namespace, "namespace", "default", "Temporal namespace")
	flag.BoolVar(&displayJSON, "json", false, "Display results as JSON")
	flag.Parse()

	request, err := buildRequest(path, csvPath, seriesID, city, year, source, window, sigma, stats)
	if err != nil {
		logger.Error("Failed to build analysis request", "error", err)
		flag.Usage()
		os.Exit(1)
	}

	var result *temporal.AnalysisResult
	if local {
		result, err = runLocal(request)
	} else {
		result, err = runRemote(context.Background(), request, address, namespace, logger)
	}
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	displayResult(result, displayJSON, logger)
}

// buildRequest assembles the analysis request from an HCL path, a CSV
// dataset, or bare flags.
func buildRequest(path, csvPath, seriesID, city string, year int, source string, window int, sigma float64, stats string) (*temporal.AnalysisRequest, error) {
	if path != "" {
		return requestFromHCL(path)
	}

	request := &temporal.AnalysisRequest{
		SeriesID: seriesID,
		Window:   window,
		Sigma:    sigma,
	}
	if stats != "" {
		request.Stats = strings.Split(stats, ",")
	}

	if csvPath != "" {
		table, err := series.LoadCSV(csvPath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load CSV dataset: %w", err)
		}
		table.City = city
		table.Year = year
		table.Source = source
		request.Dataset = &table
	}

	return request, nil
}

// requestFromHCL parses a single HCL file or a directory of HCL files
func requestFromHCL(path string) (*temporal.AnalysisRequest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if info.IsDir() {
		return hcl.ParseAnalysisDirectory(path)
	}

	if !hcl.IsHCLBasedOnExtension(path) {
		return nil, fmt.Errorf("file does not have an HCL extension: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return hcl.ParseAnalysisRequest(string(content))
}

// runLocal executes the pure pipeline in-process; it needs an inline dataset
// since there is no storage to load from.
func runLocal(request *temporal.AnalysisRequest) (*temporal.AnalysisResult, error) {
	if request.Dataset == nil {
		return nil, fmt.Errorf("local mode requires an inline dataset (HCL dataset block or -csv)")
	}

	result, err := temporal.RunAnalysis(*request, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	renderer := render.NewTextRenderer(render.DefaultChartConfig())
	if err := renderer.Render(&buf, result.Metadata, result.Summary, result.Smoothed, result.MeanLine); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	result.Report = buf.String()

	return result, nil
}

// runRemote executes the analysis through a Temporal server
func runRemote(ctx context.Context, request *temporal.AnalysisRequest, address, namespace string, logger *slog.Logger) (*temporal.AnalysisResult, error) {
	c, err := client.Dial(client.Options{
		HostPort:  address,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Temporal client: %w", err)
	}
	defer c.Close()

	workflowID := temporal.GenerateAnalysisWorkflowID(request.SeriesID)

	logger.Info("Executing analysis",
		"series_id", request.SeriesID,
		"window", request.Window)

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: climatehttp.TaskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, options, temporal.AnalysisWorkflow, *request)
	if err != nil {
		return nil, fmt.Errorf("failed to execute analysis workflow: %w", err)
	}

	var result *temporal.AnalysisResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to get analysis result: %w", err)
	}

	return result, nil
}

// displayResult shows the analysis result in human-readable or JSON format
func displayResult(result *temporal.AnalysisResult, jsonOutput bool, logger *slog.Logger) {
	if jsonOutput {
		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Error("Failed to marshal result to JSON", "error", err)
			fmt.Printf("%+v\n", result)
		} else {
			fmt.Println(string(resultJSON))
		}
		return
	}

	if result.Report != "" {
		fmt.Print(result.Report)
	} else {
		fmt.Printf("  min:  %.2f at index %d\n", result.Summary.Min, result.Summary.MinIndex)
		fmt.Printf("  max:  %.2f at index %d\n", result.Summary.Max, result.Summary.MaxIndex)
		fmt.Printf("  mean: %.2f\n", result.Summary.Mean)
	}

	if len(result.Stats) > 0 {
		fmt.Println("  stats:")
		for name, value := range result.Stats {
			fmt.Printf("    %s: %.4f\n", name, value)
		}
	}
}
