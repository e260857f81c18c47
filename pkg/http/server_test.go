package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.temporal.io/sdk/client"
	sdkMocks "go.temporal.io/sdk/mocks"

	"github.com/leowmjw/go-temporal-climate/pkg/temporal"
)

func newTestServer() (*Server, *sdkMocks.Client) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockClient := &sdkMocks.Client{}
	return NewServer(logger, mockClient, ":8080"), mockClient
}

func TestServer_handleIngestReadings_ValidJSON(t *testing.T) {
	server, mockClient := newTestServer()

	// JSON parsing and validation succeed; the Temporal call is mocked to
	// return an error, which the server must surface as a 500.
	readings := []json.RawMessage{
		json.RawMessage(`{"day":0,"temp_c":1.5}`),
	}

	body, _ := json.Marshal(readings)
	req := httptest.NewRequest("POST", "/stations/berlin/readings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "berlin")

	readingBytes := make([][]byte, len(readings))
	for i, reading := range readings {
		readingBytes[i] = []byte(reading)
	}
	expectedSignal := temporal.ReadingSignal{
		Readings: readingBytes,
	}
	expectedWorkflowID := temporal.GenerateIngestionWorkflowID("berlin")
	expectedOptions := client.StartWorkflowOptions{
		ID:        expectedWorkflowID,
		TaskQueue: TaskQueue,
	}

	mockClient.On("SignalWithStartWorkflow",
		mock.Anything,
		expectedWorkflowID,
		temporal.ReadingSignalName,
		expectedSignal,
		expectedOptions,
		mock.AnythingOfType("func(internal.Context, string) error"),
		"berlin",
	).Return(nil, errors.New("mock temporal error")).Once()

	rr := httptest.NewRecorder()
	server.handleIngestReadings(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d after mocked Temporal error, got %d. Body: %s",
			http.StatusInternalServerError, rr.Code, rr.Body.String())
	}

	mockClient.AssertExpectations(t)
}

func TestServer_handleIngestReadings_InvalidJSON(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("POST", "/stations/berlin/readings", strings.NewReader("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "berlin")

	rr := httptest.NewRecorder()
	server.handleIngestReadings(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestServer_handleIngestReadings_EmptyReadings(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("POST", "/stations/berlin/readings", strings.NewReader("[]"))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "berlin")

	rr := httptest.NewRecorder()
	server.handleIngestReadings(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestServer_handleAnalyze_InvalidJSON(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("POST", "/stations/berlin/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "berlin")

	rr := httptest.NewRecorder()
	server.handleAnalyze(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestServer_handleAnalyze_InvalidHCL(t *testing.T) {
	server, _ := newTestServer()

	// Detected as HCL but missing series_id
	req := httptest.NewRequest("POST", "/stations/berlin/analyze", strings.NewReader(`window = 3`))
	req.Header.Set("Content-Type", "application/vnd.hcl")
	req.SetPathValue("id", "berlin")

	rr := httptest.NewRecorder()
	server.handleAnalyze(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestServer_handleAnalyze_WorkflowError(t *testing.T) {
	server, mockClient := newTestServer()

	body := `{"window":3}`
	req := httptest.NewRequest("POST", "/stations/berlin/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", "berlin")

	mockClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.AnythingOfType("internal.StartWorkflowOptions"),
		mock.Anything,
		mock.Anything,
	).Return(nil, errors.New("mock temporal error")).Once()

	rr := httptest.NewRecorder()
	server.handleAnalyze(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d. Body: %s",
			http.StatusInternalServerError, rr.Code, rr.Body.String())
	}

	mockClient.AssertExpectations(t)
}

func TestServer_handleHealth(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.handleHealth(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}
