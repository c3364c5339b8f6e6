package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/knockknock1010/Back/config"
	"github.com/knockknock1010/Back/model"
	"github.com/knockknock1010/Back/pkg/logger"
)

// Engine is the external document-analysis engine the orchestrator
// drives. EngineService is the production implementation; tests
// substitute a double.
type Engine interface {
	StoreFile(ctx context.Context, filename string, r io.Reader) (string, error)
	CreateThread(ctx context.Context, instructions, fileID string) (string, error)
	CreateRun(ctx context.Context, threadID, assistantID string) (*EngineRun, error)
	GetRun(ctx context.Context, threadID, runID string) (*EngineRun, error)
	FirstMessageText(ctx context.Context, threadID string) (string, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// AnalysisService orchestrates one analysis job per call: resolve the
// category, upload the document, run the engine to a terminal status,
// sanitize the answer and gate it. The uploaded file is deleted from
// the engine exactly once on every exit path.
//
// Engine failures come back as an {"error": ...} JSON payload with a
// nil error; only ErrUnknownCategory and *NotAContractError propagate
// as errors.
type AnalysisService struct {
	engine       Engine
	registry     *CategoryRegistry
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewAnalysisService(engine Engine, registry *CategoryRegistry, cfg *config.EngineConfig) *AnalysisService {
	return &AnalysisService{
		engine:       engine,
		registry:     registry,
		pollInterval: time.Duration(cfg.PollIntervalSec) * time.Second,
		pollTimeout:  time.Duration(cfg.PollTimeoutSec) * time.Second,
	}
}

// Analyze runs the full job lifecycle for one document and returns the
// sanitized result string.
func (s *AnalysisService) Analyze(ctx context.Context, filePath string, category model.Category) (string, error) {
	assistantID, instructions, err := s.registry.Resolve(category)
	if err != nil {
		return "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return errorPayload("failed to read document", err.Error(), ""), nil
	}
	defer f.Close()

	fileID, err := s.engine.StoreFile(ctx, filepath.Base(filePath), f)
	if err != nil {
		return errorPayload("document upload failed", err.Error(), ""), nil
	}

	// Best-effort remote cleanup on every exit path. Runs even when the
	// caller's context is already cancelled, and never becomes the
	// reported failure.
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if derr := s.engine.DeleteFile(cleanupCtx, fileID); derr != nil {
			logger.Warn(ctx, "artifact cleanup failed", "file_id", fileID, "error", derr)
		}
	}()

	threadID, err := s.engine.CreateThread(ctx, instructions, fileID)
	if err != nil {
		return errorPayload("analysis job creation failed", err.Error(), ""), nil
	}

	run, err := s.engine.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		return errorPayload("analysis run failed to start", err.Error(), ""), nil
	}

	pollCtx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	status, err := s.pollRun(pollCtx, threadID, run)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errorPayload("analysis failed", "", "timed_out"), nil
		}
		return errorPayload("analysis failed", err.Error(), ""), nil
	}
	if status != RunCompleted {
		return errorPayload("analysis failed", "", status), nil
	}

	raw, err := s.engine.FirstMessageText(ctx, threadID)
	if err != nil {
		return errorPayload("failed to fetch analysis result", err.Error(), ""), nil
	}

	clean := Sanitize(raw)
	if gateErr := CheckContract(clean); gateErr != nil {
		return "", gateErr
	}

	logger.Info(ctx, "analysis completed", "category", category, "result_bytes", len(clean))
	return clean, nil
}

// pollRun blocks until the run reaches a terminal status or the context
// expires.
func (s *AnalysisService) pollRun(ctx context.Context, threadID string, run *EngineRun) (string, error) {
	current := run
	for !current.IsTerminal() {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.pollInterval):
		}

		next, err := s.engine.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return "", err
		}
		current = next
	}
	return current.Status, nil
}

// errorPayload builds the error-shaped JSON string returned in place of
// a result when the engine fails.
func errorPayload(message, details, status string) string {
	payload := struct {
		Error   string `json:"error"`
		Details string `json:"details,omitempty"`
		Status  string `json:"status,omitempty"`
	}{Error: message, Details: details, Status: status}

	data, err := json.Marshal(payload)
	if err != nil {
		return `{"error": "internal error"}`
	}
	return string(data)
}
