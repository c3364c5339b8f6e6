package model

import (
	"time"
)

// Category classifies an uploaded legal document. The set is closed:
// the registry rejects anything outside these values before the engine
// is ever contacted.
type Category string

const (
	CategoryRealEstate Category = "REAL_ESTATE"
	CategoryWork       Category = "WORK"
	CategoryConsumer   Category = "CONSUMER"
	CategoryNDA        Category = "NDA"
	CategoryGeneral    Category = "GENERAL"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryRealEstate,
	CategoryWork,
	CategoryConsumer,
	CategoryNDA,
	CategoryGeneral,
}

// Document represents an analyzed legal document
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Owner     string    `json:"owner"`
	Category  Category  `json:"category"`
	SourceURL string    `json:"source_url,omitempty"`
	// ArchiveObject is the object name of the archived original, empty
	// when archiving was skipped or failed.
	ArchiveObject string `json:"-"`
	Status    string    `json:"status"` // done, failed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document status constants
const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// Clause is the synthetic whole-document clause attached to a report
type Clause struct {
	ID           string `json:"id"`
	DocumentID   string `json:"document_id"`
	ClauseNumber string `json:"clause_number"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}

// ClauseAnalysis holds the engine's sanitized output for a clause
type ClauseAnalysis struct {
	ID        string `json:"id"`
	ClauseID  string `json:"clause_id"`
	RiskLevel string `json:"risk_level"` // HIGH, MEDIUM, LOW
	Summary   string `json:"summary"`
	Suggest   string `json:"suggestion"`
}

// Risk level constants
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)
