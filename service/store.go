package service

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/knockknock1010/Back/config"
	"github.com/knockknock1010/Back/model"
)

// legacyHighRiskMarker is the literal the original pipeline scanned the
// raw payload for. Kept only as a fallback for output that fails to
// parse as JSON.
const legacyHighRiskMarker = `"risk_level": "HIGH"`

// ArchiveRef points at the archived original of an analyzed document.
// Zero value means archiving was skipped or failed.
type ArchiveRef struct {
	ObjectName string
	URL        string
}

// AnalysisRecord groups the document, its synthetic whole-document
// clause, and the analysis persisted for one orchestration call.
type AnalysisRecord struct {
	Document model.Document       `json:"document"`
	Clause   model.Clause         `json:"clause"`
	Analysis model.ClauseAnalysis `json:"analysis"`
}

// DocumentStore is an in-memory store for analysis reports.
// In production, this should be replaced with a database.
type DocumentStore struct {
	mu           sync.RWMutex
	records      map[string]*AnalysisRecord
	maxDocuments int // Maximum reports to keep, 0 = unlimited
}

func NewDocumentStore(cfg *config.StoreConfig) *DocumentStore {
	maxDocuments := cfg.MaxDocuments
	if maxDocuments < 0 {
		maxDocuments = 0
	}
	return &DocumentStore{
		records:      make(map[string]*AnalysisRecord),
		maxDocuments: maxDocuments,
	}
}

// SaveReport persists one analysis result as a document record, a
// single whole-document clause, and an analysis whose risk level is
// derived from the result payload.
func (s *DocumentStore) SaveReport(owner, filename string, category model.Category, archive ArchiveRef, result string) *AnalysisRecord {
	label := LabelFor(category)
	now := time.Now()

	docID := uuid.New().String()
	clauseID := uuid.New().String()

	record := &AnalysisRecord{
		Document: model.Document{
			ID:            docID,
			Filename:      filename,
			Owner:         owner,
			Category:      category,
			SourceURL:     archive.URL,
			ArchiveObject: archive.ObjectName,
			Status:        model.StatusDone,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Clause: model.Clause{
			ID:           clauseID,
			DocumentID:   docID,
			ClauseNumber: "Comprehensive Review",
			Title:        label.Title,
			Body:         "See the attached original contract",
		},
		Analysis: model.ClauseAnalysis{
			ID:        uuid.New().String(),
			ClauseID:  clauseID,
			RiskLevel: DeriveRiskLevel(result),
			Summary:   label.Summary,
			Suggest:   result,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[docID] = record
	s.cleanupIfNeeded()

	return record
}

func (s *DocumentStore) Get(id string) *AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

func (s *DocumentStore) GetByOwner(owner string) []*AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*AnalysisRecord
	for _, r := range s.records {
		if r.Document.Owner == owner {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Document.CreatedAt.After(result[j].Document.CreatedAt)
	})
	return result
}

func (s *DocumentStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// Count returns the number of reports in the store
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// cleanupIfNeeded removes oldest reports if the store exceeds
// maxDocuments. Must be called with lock held.
func (s *DocumentStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return // Unlimited
	}

	if len(s.records) <= s.maxDocuments {
		return
	}

	records := make([]*AnalysisRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Document.CreatedAt.Before(records[j].Document.CreatedAt)
	})

	removeCount := len(records) - s.maxDocuments
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old report",
			"document_id", records[i].Document.ID,
			"created_at", records[i].Document.CreatedAt,
		)
		delete(s.records, records[i].Document.ID)
	}
}

// DeriveRiskLevel determines the report-level risk from a result
// payload: parse the JSON and scan for any risk_level field set to
// HIGH. Unparseable payloads fall back to the legacy literal substring
// scan.
func DeriveRiskLevel(result string) string {
	var parsed any
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		if strings.Contains(result, legacyHighRiskMarker) {
			return model.RiskHigh
		}
		return model.RiskLow
	}

	if containsHighRisk(parsed) {
		return model.RiskHigh
	}
	return model.RiskLow
}

func containsHighRisk(v any) bool {
	switch value := v.(type) {
	case map[string]any:
		for key, nested := range value {
			if key == "risk_level" {
				if level, ok := nested.(string); ok && level == model.RiskHigh {
					return true
				}
			}
			if containsHighRisk(nested) {
				return true
			}
		}
	case []any:
		for _, item := range value {
			if containsHighRisk(item) {
				return true
			}
		}
	}
	return false
}
