package emulator

import (
	"testing"

	"github.com/ofitec/conciliador/pkg/mapping"
)

func floatPtr(v float64) *float64 { return &v }

func TestMatcherSuggest(t *testing.T) {
	matcher := NewMatcher(mapping.Default())

	docs := []Document{
		{ID: 1, Kind: "bank", Doc: "B-55", Fecha: "2025-01-11", Amount: 15000},
		{ID: 2, Kind: "bank", Doc: "B-90", Fecha: "2025-02-20", Amount: 15000},  // outside date window
		{ID: 3, Kind: "bank", Doc: "B-91", Fecha: "2025-01-12", Amount: 99000},  // outside amount tolerance
		{ID: 4, Kind: "sales", Doc: "F-77", Fecha: "2025-01-10", Amount: 15000}, // wrong target kind for expense
	}

	req := SuggestionRequest{
		SourceType: "expense",
		Days:       5,
		AmountTol:  0.01,
		Amount:     floatPtr(15000),
		Date:       "2025-01-10",
		Ref:        "E-102",
	}

	candidates := matcher.Suggest(req, docs)

	if len(candidates) != 1 {
		t.Fatalf("Suggest() returned %d candidates, expected 1", len(candidates))
	}
	if candidates[0].Doc != "B-55" {
		t.Errorf("Suggest() top candidate = %q, expected B-55", candidates[0].Doc)
	}
	if candidates[0].TargetKind != "bank" {
		t.Errorf("Suggest() target kind = %q, expected bank", candidates[0].TargetKind)
	}
	if candidates[0].Score <= 0 {
		t.Errorf("Suggest() score = %v, expected > 0", candidates[0].Score)
	}
}

func TestMatcherSuggestRanking(t *testing.T) {
	matcher := NewMatcher(mapping.Default())

	docs := []Document{
		{ID: 1, Kind: "bank", Doc: "B-2", Fecha: "2025-01-14", Amount: 15000}, // 4 days off
		{ID: 2, Kind: "bank", Doc: "B-1", Fecha: "2025-01-10", Amount: 15000}, // exact date
		{ID: 3, Kind: "bank", Doc: "B-3", Fecha: "2025-01-12", Amount: 14950}, // amount slightly off
	}

	req := SuggestionRequest{
		SourceType: "expense",
		Days:       5,
		AmountTol:  0.01,
		Amount:     floatPtr(15000),
		Date:       "2025-01-10",
	}

	candidates := matcher.Suggest(req, docs)

	if len(candidates) != 3 {
		t.Fatalf("Suggest() returned %d candidates, expected 3", len(candidates))
	}
	if candidates[0].Doc != "B-1" {
		t.Errorf("Suggest() best candidate = %q, expected exact match B-1", candidates[0].Doc)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[i-1].Score {
			t.Errorf("Suggest() not ranked descending at index %d: %v > %v", i, candidates[i].Score, candidates[i-1].Score)
		}
	}
}

func TestMatcherSuggestRefBonus(t *testing.T) {
	matcher := NewMatcher(mapping.Default())

	docs := []Document{
		{ID: 1, Kind: "bank", Doc: "B-1", Fecha: "2025-01-10", Amount: 15000},
		{ID: 2, Kind: "bank", Doc: "B-2", Fecha: "2025-01-10", Amount: 15000, Ref: "E-102"},
	}

	req := SuggestionRequest{
		SourceType: "expense",
		Days:       5,
		AmountTol:  0.01,
		Amount:     floatPtr(15000),
		Date:       "2025-01-10",
		Ref:        "e-102", // reference match is case-insensitive
	}

	candidates := matcher.Suggest(req, docs)

	if len(candidates) != 2 {
		t.Fatalf("Suggest() returned %d candidates, expected 2", len(candidates))
	}
	if candidates[0].Doc != "B-2" {
		t.Errorf("Suggest() best candidate = %q, expected the ref match B-2", candidates[0].Doc)
	}
}

func TestMatcherUnknownSourceType(t *testing.T) {
	matcher := NewMatcher(mapping.Default())

	docs := []Document{{ID: 1, Kind: "bank", Doc: "B-1", Fecha: "2025-01-10", Amount: 100}}
	req := SuggestionRequest{SourceType: "misc", Amount: floatPtr(100), Date: "2025-01-10"}

	if candidates := matcher.Suggest(req, docs); candidates != nil {
		t.Errorf("Suggest() = %v for unknown source type, expected nil", candidates)
	}
}
