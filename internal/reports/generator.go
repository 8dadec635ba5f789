package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/avdeyev/bodylens/internal/metabolism"
	"github.com/avdeyev/bodylens/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders analysis results as PDF reports
type Generator struct{}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePDF renders a full analysis record as an A4 PDF
func (g *Generator) GeneratePDF(record *storage.AnalysisRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("nil analysis record")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Body Composition Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Result ID: %s", record.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", record.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(10)

	// Profile
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Profile")
	pdf.Ln(7)

	inputs := record.UserInputs
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Age: %d years", inputs.Age))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Gender: %s", titleCase(inputs.Gender)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Height: %d cm", inputs.Height))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Weight: %.1f kg", inputs.Weight))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Activity level: %s", strings.ReplaceAll(inputs.Activity, "_", " ")))
	pdf.Ln(10)

	// Metabolic numbers derived from the profile
	profile := metabolism.Profile{
		Age:      inputs.Age,
		Gender:   inputs.Gender,
		HeightCM: inputs.Height,
		WeightKG: inputs.Weight,
		Activity: inputs.Activity,
	}
	bmi := metabolism.BMI(profile.HeightCM, profile.WeightKG)
	bmr := metabolism.BMR(profile)
	tdee := metabolism.TDEE(profile)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Metabolic Summary")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("BMI: %.1f", bmi))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("BMR: %.0f kcal/day", bmr))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("TDEE: %.0f kcal/day", tdee))
	pdf.Ln(10)

	// Body composition
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Body Composition")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Estimated body fat: %.1f%% (confidence %.0f%%)", record.BodyFatPercentage, record.Confidence*100))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Body type: %s", record.BodyType))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Body shape: %s", record.BodyShape))
	pdf.Ln(10)

	// Health observations
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Health Observations")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for _, problem := range record.HealthProblems {
		pdf.MultiCell(0, 5, "- "+problem, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)

	if strings.TrimSpace(record.AdditionalDetails) != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Detailed Analysis")
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, record.AdditionalDetails, "", "L", false)
		pdf.Ln(5)
	}

	// Recommendations
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Recommendations")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for i, rec := range record.Recommendations {
		pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, rec), "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
