package hcl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/leowmjw/go-temporal-climate/pkg/temporal"
)

// MergeHCLFiles combines multiple HCL files into a single HCL file body.
// This mimics how Terraform loads multiple .tf files in a directory, so a
// dataset file can live next to the analysis file that uses it.
func MergeHCLFiles(filePaths []string) (*hcl.File, error) {
	parser := hclparse.NewParser()
	var mergedContent bytes.Buffer

	for _, path := range filePaths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}

		mergedContent.Write(content)
		mergedContent.WriteString("\n")
	}

	file, diags := parser.ParseHCL(mergedContent.Bytes(), "merged.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse merged HCL content: %s", diags.Error())
	}

	return file, nil
}

// FindHCLFiles returns all HCL files under a directory.
func FindHCLFiles(dirPath string) ([]string, error) {
	var hclFiles []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsHCLBasedOnExtension(info.Name()) {
			hclFiles = append(hclFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return hclFiles, nil
}

// ParseAnalysisDirectory merges all HCL files in a directory and parses them
// as one analysis request.
func ParseAnalysisDirectory(dirPath string) (*temporal.AnalysisRequest, error) {
	hclFiles, err := FindHCLFiles(dirPath)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no HCL files found in directory %s", dirPath)
	}

	mergedFile, err := MergeHCLFiles(hclFiles)
	if err != nil {
		return nil, err
	}

	return parseAnalysisFromFile(mergedFile)
}
