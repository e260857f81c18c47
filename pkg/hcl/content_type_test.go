package hcl

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentTypeFromHeader(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`anything`))
	req.Header.Set("Content-Type", ContentTypeHCL)

	detected, err := DetectContentType(req)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeHCL, detected)
}

func TestDetectContentTypeFromBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"JSON object", `{"series_id":"x"}`, ContentTypeJSON},
		{"JSON array", `[1,2,3]`, ContentTypeJSON},
		{"HCL assignment", `series_id = "x"`, ContentTypeHCL},
		{"empty body", ``, ContentTypeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))

			detected, err := DetectContentType(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, detected)

			// The body must still be readable after detection
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestIsHCLBasedOnExtension(t *testing.T) {
	assert.True(t, IsHCLBasedOnExtension("analysis.hcl"))
	assert.True(t, IsHCLBasedOnExtension("main.tf"))
	assert.False(t, IsHCLBasedOnExtension("data.json"))
}
