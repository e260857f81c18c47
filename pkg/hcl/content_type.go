package hcl

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const (
	// ContentTypeHCL is the custom MIME type for HCL analysis requests
	ContentTypeHCL = "application/vnd.hcl"

	// ContentTypeJSON is the standard MIME type for JSON
	ContentTypeJSON = "application/json"
)

// DetectContentType determines whether a request body is JSON or HCL, first
// from the Content-Type header and otherwise by inspecting the body. The
// body is restored so callers can read it again.
func DetectContentType(r *http.Request) (string, error) {
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && (mediaType == ContentTypeHCL || mediaType == ContentTypeJSON) {
			return mediaType, nil
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 {
		// JSON starts with { or [; anything else that parses as HCL is HCL
		if trimmed[0] == '{' || trimmed[0] == '[' {
			return ContentTypeJSON, nil
		}
		if IsHCL(trimmed) {
			return ContentTypeHCL, nil
		}
	}

	return ContentTypeJSON, nil
}

// IsHCLBasedOnExtension checks if the filename has an HCL extension
func IsHCLBasedOnExtension(filename string) bool {
	return strings.HasSuffix(filename, ".hcl") ||
		strings.HasSuffix(filename, ".tf") ||
		strings.HasSuffix(filename, ".tfvars")
}
