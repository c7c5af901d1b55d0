package services

import (
	"testing"
)

func TestGenerateEstimatePDF(t *testing.T) {
	result, err := GenerateEstimatePDF(estimateExportFixture())
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateEstimatePDF_EmptyLines(t *testing.T) {
	data := estimateExportFixture()
	data.Lines = nil
	data.Total = 0

	result, err := GenerateEstimatePDF(data)
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
}

func TestGenerateEstimatePDF_ManyLines(t *testing.T) {
	data := estimateExportFixture()
	for i := 0; i < 60; i++ {
		data.Lines = append(data.Lines, LineItem{
			Label: "Filler Material", Quantity: float64(i + 1), Unit: "each", Cost: 9.99,
		})
	}

	result, err := GenerateEstimatePDF(data)
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
}
