package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/avdeyev/bodylens/internal/storage"
)

func sampleRecord() *storage.AnalysisRecord {
	return &storage.AnalysisRecord{
		ID:                "11111111-2222-3333-4444-555555555555",
		BodyFatPercentage: 18.5,
		Confidence:        0.85,
		BodyType:          "Mesomorph (naturally athletic)",
		BodyShape:         "Athletic/V-shaped",
		HealthProblems:    []string{"No significant concerns observed from available data"},
		AdditionalDetails: "Based on the analysis of a 25-year-old male...",
		Recommendations: []string{
			"Maintain a consistent strength training routine",
			"Stay hydrated throughout the day",
		},
		UserInputs: storage.UserInputs{
			Age:      25,
			Gender:   "male",
			Height:   180,
			Weight:   75,
			Activity: "moderate",
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGeneratePDF(t *testing.T) {
	gen := NewGenerator()

	data, err := gen.GeneratePDF(sampleRecord())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF data")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", data[:8])
	}
}

func TestGeneratePDFNilRecord(t *testing.T) {
	gen := NewGenerator()

	if _, err := gen.GeneratePDF(nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}

func TestGeneratePDFEmptySections(t *testing.T) {
	gen := NewGenerator()

	record := sampleRecord()
	record.AdditionalDetails = ""
	record.Recommendations = nil

	data, err := gen.GeneratePDF(record)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF magic bytes")
	}
}
