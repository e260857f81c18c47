package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/leowmjw/go-temporal-climate/pkg/hcl"
	"github.com/leowmjw/go-temporal-climate/pkg/temporal"
)

// TaskQueue is the Temporal task queue shared by server and worker
const TaskQueue = "climate-task-queue"

// Server represents the HTTP server for the climate analysis service
type Server struct {
	logger         *slog.Logger
	temporalClient client.Client
	addr           string
}

// NewServer creates a new HTTP server
func NewServer(logger *slog.Logger, temporalClient client.Client, addr string) *Server {
	return &Server{
		logger:         logger,
		temporalClient: temporalClient,
		addr:           addr,
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("POST /stations/{id}/readings", s.handleIngestReadings)
	mux.HandleFunc("POST /stations/{id}/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.loggingMiddleware(mux)

	server := &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	s.logger.Info("Starting HTTP server", "addr", s.addr)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// Reading ingestion endpoint
func (s *Server) handleIngestReadings(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		s.respondError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	var readings []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&readings); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(readings) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one reading is required")
		return
	}

	s.logger.Info("Ingesting readings", "stationID", stationID, "count", len(readings))

	// Convert to byte slices
	readingBytes := make([][]byte, len(readings))
	for i, reading := range readings {
		readingBytes[i] = []byte(reading)
	}

	// Send to Temporal workflow via signal
	workflowID := temporal.GenerateIngestionWorkflowID(stationID)

	// Use SignalWithStart to ensure workflow exists
	signal := temporal.ReadingSignal{
		Readings: readingBytes,
	}

	_, err := s.temporalClient.SignalWithStartWorkflow(
		r.Context(),
		workflowID,
		temporal.ReadingSignalName,
		signal,
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: TaskQueue,
		},
		temporal.IngestionWorkflow,
		stationID,
	)

	if err != nil {
		s.logger.Error("Failed to signal workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to process readings")
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message":       "readings queued for processing",
		"station_id":    stationID,
		"reading_count": len(readings),
	})
}

// Analysis endpoint, accepting a JSON or HCL request body
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		s.respondError(w, http.StatusBadRequest, "station ID is required")
		return
	}

	request, err := s.decodeAnalysisRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Ensure series ID matches the path
	request.SeriesID = stationID

	s.logger.Info("Processing analysis", "stationID", stationID,
		"window", request.Window, "inlineDataset", request.Dataset != nil)

	workflowID := temporal.GenerateAnalysisWorkflowID(stationID)

	workflowRun, err := s.temporalClient.ExecuteWorkflow(
		r.Context(),
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: TaskQueue,
		},
		temporal.AnalysisWorkflow,
		*request,
	)

	if err != nil {
		s.logger.Error("Failed to start analysis workflow", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to start analysis")
		return
	}

	// Wait for result
	var result *temporal.AnalysisResult
	err = workflowRun.Get(r.Context(), &result)
	if err != nil {
		s.logger.Error("Analysis workflow failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "analysis execution failed")
		return
	}

	s.logger.Info("Analysis completed", "stationID", stationID, "mean", result.Summary.Mean)
	s.respondJSON(w, http.StatusOK, result)
}

// decodeAnalysisRequest reads a JSON or HCL request body
func (s *Server) decodeAnalysisRequest(r *http.Request) (*temporal.AnalysisRequest, error) {
	contentType, err := hcl.DetectContentType(r)
	if err != nil {
		return nil, fmt.Errorf("unreadable request body")
	}

	if contentType == hcl.ContentTypeHCL {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("unreadable request body")
		}
		request, err := hcl.ParseAnalysisRequest(string(body))
		if err != nil {
			return nil, fmt.Errorf("invalid HCL body: %v", err)
		}
		return request, nil
	}

	var request temporal.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	return &request, nil
}

// Health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Middleware for request logging
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap ResponseWriter to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)

		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", duration,
			"user_agent", r.UserAgent(),
		)
	})
}

// Response helpers
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn("HTTP error response", "status", status, "message", message)
	s.respondJSON(w, status, map[string]string{"error": message})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
