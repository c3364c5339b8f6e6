package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/knockknock1010/Back/config"
)

func TestNewEngineService(t *testing.T) {
	cfg := &config.EngineConfig{
		APIURL: "https://engine.test/v1",
		APIKey: "test-key",
	}

	svc := NewEngineService(cfg)
	if svc == nil {
		t.Fatal("Expected non-nil service")
	}
	if svc.config != cfg {
		t.Error("Expected config to be set")
	}
	if svc.httpClient == nil {
		t.Error("Expected httpClient to be set")
	}
}

func TestEngineStoreFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/files" {
			t.Errorf("Expected /files, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Expected Authorization header")
		}
		if r.Header.Get("OpenAI-Beta") != "assistants=v2" {
			t.Error("Expected assistants API version header")
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Expected multipart form: %v", err)
		}
		if r.FormValue("purpose") != "assistants" {
			t.Errorf("Expected purpose=assistants, got %s", r.FormValue("purpose"))
		}

		json.NewEncoder(w).Encode(map[string]string{"id": "file-abc"})
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	fileID, err := svc.StoreFile(context.Background(), "contract.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fileID != "file-abc" {
		t.Errorf("Expected file-abc, got %s", fileID)
	}
}

func TestEngineCreateThread(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/threads" {
			t.Errorf("Expected /threads, got %s", r.URL.Path)
		}

		var body struct {
			Messages []struct {
				Role        string `json:"role"`
				Content     string `json:"content"`
				Attachments []struct {
					FileID string `json:"file_id"`
					Tools  []struct {
						Type string `json:"type"`
					} `json:"tools"`
				} `json:"attachments"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Expected JSON body: %v", err)
		}
		if len(body.Messages) != 1 {
			t.Fatalf("Expected one message, got %d", len(body.Messages))
		}
		message := body.Messages[0]
		if message.Role != "user" {
			t.Errorf("Expected user role, got %s", message.Role)
		}
		if message.Content != "analyze this" {
			t.Errorf("Expected instruction text, got %s", message.Content)
		}
		if len(message.Attachments) != 1 || message.Attachments[0].FileID != "file-abc" {
			t.Error("Expected file attachment")
		}
		if len(message.Attachments[0].Tools) != 1 || message.Attachments[0].Tools[0].Type != "file_search" {
			t.Error("Expected file_search tool on attachment")
		}

		json.NewEncoder(w).Encode(map[string]string{"id": "thread-abc"})
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	threadID, err := svc.CreateThread(context.Background(), "analyze this", "file-abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if threadID != "thread-abc" {
		t.Errorf("Expected thread-abc, got %s", threadID)
	}
}

func TestEngineCreateRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/threads/thread-abc/runs" {
			t.Errorf("Expected runs path, got %s", r.URL.Path)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["assistant_id"] != "asst-1" {
			t.Errorf("Expected assistant_id asst-1, got %s", body["assistant_id"])
		}

		json.NewEncoder(w).Encode(EngineRun{ID: "run-abc", Status: RunQueued})
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	run, err := svc.CreateRun(context.Background(), "thread-abc", "asst-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if run.ID != "run-abc" || run.Status != RunQueued {
		t.Errorf("Unexpected run: %+v", run)
	}
}

func TestEngineGetRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/threads/thread-abc/runs/run-abc" {
			t.Errorf("Expected run path, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(EngineRun{ID: "run-abc", Status: RunCompleted})
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	run, err := svc.GetRun(context.Background(), "thread-abc", "run-abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if run.Status != RunCompleted {
		t.Errorf("Expected completed, got %s", run.Status)
	}
}

func TestEngineFirstMessageText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/threads/thread-abc/messages" {
			t.Errorf("Expected messages path, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("order") != "desc" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("Expected order=desc&limit=1, got %s", r.URL.RawQuery)
		}

		w.Write([]byte(`{"data":[{"content":[{"type":"text","text":{"value":"{\"a\":1}"}}]}]}`))
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	text, err := svc.FirstMessageText(context.Background(), "thread-abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != `{"a":1}` {
		t.Errorf("Expected message text, got %q", text)
	}
}

func TestEngineFirstMessageTextEmptyThread(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	_, err := svc.FirstMessageText(context.Background(), "thread-abc")
	if err == nil {
		t.Error("Expected error for empty thread")
	}
}

func TestEngineDeleteFile(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != "DELETE" {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/files/file-abc" {
			t.Errorf("Expected file path, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "file-abc", "deleted": true})
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	if err := svc.DeleteFile(context.Background(), "file-abc"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !called {
		t.Error("Expected delete request to be sent")
	}
}

func TestEngineAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "bad-key"})

	_, err := svc.GetRun(context.Background(), "thread-abc", "run-abc")
	if err == nil {
		t.Fatal("Expected error for API error response")
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("Expected engine error message, got %v", err)
	}
}

func TestEngineInvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	svc := NewEngineService(&config.EngineConfig{APIURL: server.URL, APIKey: "test-key"})

	_, err := svc.CreateThread(context.Background(), "instructions", "file-abc")
	if err == nil {
		t.Error("Expected error for invalid JSON response")
	}
}

func TestEngineNetworkError(t *testing.T) {
	svc := NewEngineService(&config.EngineConfig{
		APIURL: "http://invalid-host-that-does-not-exist:9999",
		APIKey: "test-key",
	})

	if _, err := svc.StoreFile(context.Background(), "contract.pdf", strings.NewReader("x")); err == nil {
		t.Error("Expected error for network failure")
	}
	if _, err := svc.GetRun(context.Background(), "thread-abc", "run-abc"); err == nil {
		t.Error("Expected error for network failure")
	}
}

func TestEngineRunIsTerminal(t *testing.T) {
	terminal := []string{RunCompleted, RunFailed, RunExpired, RunCancelled, "incomplete", "requires_action"}
	for _, status := range terminal {
		run := &EngineRun{Status: status}
		if !run.IsTerminal() {
			t.Errorf("Expected %s to be terminal", status)
		}
	}

	active := []string{RunQueued, RunInProgress, "cancelling"}
	for _, status := range active {
		run := &EngineRun{Status: status}
		if run.IsTerminal() {
			t.Errorf("Expected %s to be non-terminal", status)
		}
	}
}
