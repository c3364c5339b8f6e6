package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/knockknock1010/Back/config"
)

// EngineService is the HTTP client for the external document-analysis
// engine (an OpenAI Assistants-compatible API). Documents are stored as
// files, analyzed through a thread run against a configured assistant,
// and the answer is read back from the first thread message.
type EngineService struct {
	config     *config.EngineConfig
	httpClient *http.Client
}

// Run status constants reported by the engine
const (
	RunQueued     = "queued"
	RunInProgress = "in_progress"
	RunCompleted  = "completed"
	RunFailed     = "failed"
	RunExpired    = "expired"
	RunCancelled  = "cancelled"
)

// EngineRun is one execution cycle of an analysis job
type EngineRun struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// IsTerminal reports whether no further progress will occur for this run
func (r *EngineRun) IsTerminal() bool {
	switch r.Status {
	case RunCompleted, RunFailed, RunExpired, RunCancelled, "incomplete", "requires_action":
		return true
	}
	return false
}

// engineError is the error envelope the engine returns on non-2xx responses
type engineError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewEngineService(cfg *config.EngineConfig) *EngineService {
	return &EngineService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// StoreFile uploads document bytes to the engine and returns the file ID
func (s *EngineService) StoreFile(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("purpose", "assistants"); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL+"/files", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		ID string `json:"id"`
	}
	if err := s.send(req, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

// CreateThread creates an analysis thread carrying the instruction text
// as the user message, with the stored file attached for file search.
func (s *EngineService) CreateThread(ctx context.Context, instructions, fileID string) (string, error) {
	body := map[string]any{
		"messages": []map[string]any{
			{
				"role":    "user",
				"content": instructions,
				"attachments": []map[string]any{
					{
						"file_id": fileID,
						"tools":   []map[string]string{{"type": "file_search"}},
					},
				},
			},
		},
	}

	req, err := s.jsonRequest(ctx, http.MethodPost, "/threads", body)
	if err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := s.send(req, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

// CreateRun starts the assistant on a thread
func (s *EngineService) CreateRun(ctx context.Context, threadID, assistantID string) (*EngineRun, error) {
	body := map[string]any{"assistant_id": assistantID}

	req, err := s.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/threads/%s/runs", threadID), body)
	if err != nil {
		return nil, err
	}

	var run EngineRun
	if err := s.send(req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun queries the current status of a run
func (s *EngineService) GetRun(ctx context.Context, threadID, runID string) (*EngineRun, error) {
	req, err := s.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/threads/%s/runs/%s", threadID, runID), nil)
	if err != nil {
		return nil, err
	}

	var run EngineRun
	if err := s.send(req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// FirstMessageText fetches the text of the most recent message in a
// thread, which after a completed run is the assistant's answer.
func (s *EngineService) FirstMessageText(ctx context.Context, threadID string) (string, error) {
	req, err := s.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/threads/%s/messages?order=desc&limit=1", threadID), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Data []struct {
			Content []struct {
				Type string `json:"type"`
				Text struct {
					Value string `json:"value"`
				} `json:"text"`
			} `json:"content"`
		} `json:"data"`
	}
	if err := s.send(req, &result); err != nil {
		return "", err
	}

	if len(result.Data) == 0 {
		return "", fmt.Errorf("thread %s has no messages", threadID)
	}
	for _, content := range result.Data[0].Content {
		if content.Type == "text" {
			return content.Text.Value, nil
		}
	}
	return "", fmt.Errorf("thread %s first message has no text content", threadID)
}

// DeleteFile removes a stored file from the engine
func (s *EngineService) DeleteFile(ctx context.Context, fileID string) error {
	req, err := s.jsonRequest(ctx, http.MethodDelete, "/files/"+fileID, nil)
	if err != nil {
		return err
	}
	return s.send(req, nil)
}

// jsonRequest builds a request with an optional JSON body
func (s *EngineService) jsonRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.APIURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send executes a request with auth headers and decodes the response
// into out when out is non-nil.
func (s *EngineService) send(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr engineError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("engine API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("engine API error (%d): %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w, body: %s", err, string(data))
	}
	return nil
}
