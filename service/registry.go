package service

import (
	"errors"
	"fmt"

	"github.com/knockknock1010/Back/config"
	"github.com/knockknock1010/Back/model"
)

// ErrUnknownCategory is returned when a category is not in the fixed set
// or has no analysis profile configured on the engine. The orchestrator
// fails with it before any upload or job side effect.
var ErrUnknownCategory = errors.New("unknown document category")

// categoryInstructions is the operative prompt sent to the engine for
// each category. The GENERAL prompt asks the engine to self-report the
// document type, which is what the gatekeeper keys off.
var categoryInstructions = map[model.Category]string{
	model.CategoryRealEstate: "Analyze this real-estate lease contract and extract, as JSON, deposit-fraud " +
		"risk factors (such as over-leveraged jeonse arrangements) and special clauses that put the tenant " +
		"at a disadvantage. Keep the 'analysis' and 'legal_basis' fields concise and complete so no sentence " +
		"is cut off.",
	model.CategoryWork: "Analyze this contract (employment or service agreement) and extract, as JSON, " +
		"abusive clauses that violate labor-standards or subcontracting law. Check carefully for disguised " +
		"subcontracting (freelancer in name only). Keep the 'analysis' and 'legal_basis' fields concise and " +
		"complete so no sentence is cut off.",
	model.CategoryConsumer: "Analyze this consumer service contract (gym, wedding venue, and similar) and " +
		"extract, as JSON, 'no refund' abusive clauses that violate door-to-door sales law or the act on " +
		"standard terms. Keep the 'analysis' and 'legal_basis' fields concise and complete so no sentence " +
		"is cut off.",
	model.CategoryNDA: "Analyze this non-disclosure agreement or non-compete covenant and extract, as JSON, " +
		"abusive clauses that violate unfair-competition law or the constitutional freedom of occupation. " +
		"Focus on three points: 1. whether the non-compete period exceeds one year, 2. whether the scope of " +
		"confidential information is broad enough to cover publicly known facts, 3. whether penalties are " +
		"set excessively without proof of actual damages. Write 'analysis' and 'legal_basis' in clear, " +
		"complete sentences.",
	model.CategoryGeneral: "Analyze this document. 1. First verify that it actually is a contract " +
		"(if not, return contract_type_detected: 'NOT_A_CONTRACT'). 2. If it is, find clauses that are " +
		"one-sided or unfair under the good-faith principle of civil law and the act on standard terms, " +
		"and return them as JSON. Write 'analysis' and 'legal_basis' in clear, complete sentences.",
}

// CategoryRegistry maps a document category to the engine analysis
// profile and instruction text used to process it. Read-only after
// construction, safe for concurrent use.
type CategoryRegistry struct {
	entries map[model.Category]registryEntry
}

type registryEntry struct {
	assistantID  string
	instructions string
}

// NewCategoryRegistry builds the registry from the configured
// category -> assistant ID map. Categories outside the fixed set are
// ignored even if configured.
func NewCategoryRegistry(cfg *config.EngineConfig) *CategoryRegistry {
	entries := make(map[model.Category]registryEntry, len(model.Categories))
	for _, category := range model.Categories {
		assistantID := cfg.Assistants[string(category)]
		if assistantID == "" {
			continue
		}
		entries[category] = registryEntry{
			assistantID:  assistantID,
			instructions: categoryInstructions[category],
		}
	}
	return &CategoryRegistry{entries: entries}
}

// Resolve returns the engine assistant ID and instruction text for a
// category. No side effects; deterministic.
func (r *CategoryRegistry) Resolve(category model.Category) (string, string, error) {
	entry, ok := r.entries[category]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return entry.assistantID, entry.instructions, nil
}
