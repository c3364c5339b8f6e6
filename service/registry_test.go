package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/knockknock1010/Back/config"
	"github.com/knockknock1010/Back/model"
)

func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		Assistants: map[string]string{
			"REAL_ESTATE": "asst-realestate",
			"WORK":        "asst-work",
			"CONSUMER":    "asst-consumer",
			"NDA":         "asst-nda",
			"GENERAL":     "asst-general",
		},
	}
}

func TestRegistryResolveAllCategories(t *testing.T) {
	registry := NewCategoryRegistry(testEngineConfig())

	for _, category := range model.Categories {
		assistantID, instructions, err := registry.Resolve(category)
		if err != nil {
			t.Errorf("Expected %s to resolve, got error: %v", category, err)
		}
		if assistantID == "" {
			t.Errorf("Expected assistant ID for %s", category)
		}
		if instructions == "" {
			t.Errorf("Expected instructions for %s", category)
		}
	}
}

func TestRegistryResolveDeterministic(t *testing.T) {
	registry := NewCategoryRegistry(testEngineConfig())

	first, firstInstr, _ := registry.Resolve(model.CategoryWork)
	second, secondInstr, _ := registry.Resolve(model.CategoryWork)

	if first != second || firstInstr != secondInstr {
		t.Error("Expected repeated resolution to return identical values")
	}
	if first != "asst-work" {
		t.Errorf("Expected asst-work, got %s", first)
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	registry := NewCategoryRegistry(testEngineConfig())

	_, _, err := registry.Resolve(model.Category("CRYPTO"))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestRegistryUnconfiguredCategory(t *testing.T) {
	cfg := &config.EngineConfig{
		Assistants: map[string]string{"WORK": "asst-work"},
	}
	registry := NewCategoryRegistry(cfg)

	if _, _, err := registry.Resolve(model.CategoryWork); err != nil {
		t.Errorf("Expected configured category to resolve, got %v", err)
	}
	if _, _, err := registry.Resolve(model.CategoryNDA); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory for unconfigured category, got %v", err)
	}
}

func TestRegistryGeneralAsksForSelfReport(t *testing.T) {
	registry := NewCategoryRegistry(testEngineConfig())

	_, instructions, err := registry.Resolve(model.CategoryGeneral)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(instructions, NotAContractSentinel) {
		t.Error("Expected GENERAL instructions to mention the not-a-contract sentinel")
	}
}
