package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/leowmjw/go-temporal-climate/pkg/series"
	"github.com/leowmjw/go-temporal-climate/pkg/temporal"
)

// HCLAnalysis represents the HCL analysis request structure
type HCLAnalysis struct {
	SeriesID string      `hcl:"series_id"`
	Smooth   *HCLSmooth  `hcl:"smooth,block"`
	Stats    []string    `hcl:"stats,optional"`
	Dataset  *HCLDataset `hcl:"dataset,block"`
}

// HCLSmooth configures the Gaussian smoothing pass
type HCLSmooth struct {
	Window int      `hcl:"window"`
	Sigma  *float64 `hcl:"sigma,optional"`
}

// HCLDataset carries an inline temperature dataset
type HCLDataset struct {
	City         string    `hcl:"city"`
	Year         int       `hcl:"year"`
	Source       string    `hcl:"source"`
	Days         []float64 `hcl:"days"`
	Temperatures []float64 `hcl:"temperatures"`
}

func (d *HCLDataset) toRawTable() *series.RawTable {
	return &series.RawTable{
		City:         d.City,
		Year:         d.Year,
		Source:       d.Source,
		Days:         d.Days,
		Temperatures: d.Temperatures,
	}
}

// ParseAnalysisRequest parses HCL content into a temporal.AnalysisRequest
func ParseAnalysisRequest(hclContent string) (*temporal.AnalysisRequest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(hclContent), "analysis.hcl")

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	return parseAnalysisFromFile(file)
}

// parseAnalysisFromFile decodes an analysis request from a parsed HCL file
func parseAnalysisFromFile(file *hcl.File) (*temporal.AnalysisRequest, error) {
	evalCtx := evalContext()

	var hclAnalysis HCLAnalysis
	diags := gohcl.DecodeBody(file.Body, evalCtx, &hclAnalysis)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL body: %s", diags.Error())
	}

	return convertAnalysis(&hclAnalysis)
}

// convertAnalysis maps the HCL structure onto the workflow request type
func convertAnalysis(hclAnalysis *HCLAnalysis) (*temporal.AnalysisRequest, error) {
	if hclAnalysis.SeriesID == "" {
		return nil, fmt.Errorf("analysis request must set series_id")
	}

	request := &temporal.AnalysisRequest{
		SeriesID: hclAnalysis.SeriesID,
		Stats:    hclAnalysis.Stats,
	}

	if hclAnalysis.Smooth != nil {
		request.Window = hclAnalysis.Smooth.Window
		if hclAnalysis.Smooth.Sigma != nil {
			request.Sigma = *hclAnalysis.Smooth.Sigma
		}
	}

	if hclAnalysis.Dataset != nil {
		request.Dataset = hclAnalysis.Dataset.toRawTable()
	}

	return request, nil
}

// evalContext builds the evaluation context with helper functions available
// to analysis files.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			// fahrenheit converts a °F value to °C, so datasets recorded in
			// Fahrenheit can be inlined without pre-conversion
			"fahrenheit": function.New(&function.Spec{
				Params: []function.Parameter{
					{
						Name: "degrees",
						Type: cty.Number,
					},
				},
				Type: function.StaticReturnType(cty.Number),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					f, _ := args[0].AsBigFloat().Float64()
					return cty.NumberFloatVal((f - 32) * 5 / 9), nil
				},
			}),
		},
	}
}

// IsHCL attempts to detect if the given content is in HCL format
func IsHCL(content []byte) bool {
	_, err := hclsyntax.ParseConfig(content, "", hcl.Pos{Line: 1, Column: 1})
	return err == nil
}
