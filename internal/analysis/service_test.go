package analysis

import (
	"testing"

	"github.com/avdeyev/bodylens/internal/storage"
)

func TestRuleBasedAssessmentUsesExactBMIAtBoundary(t *testing.T) {
	// 80.85 kg at 180 cm is 24.95 exact but 25.0 rounded. The rules compare
	// the exact value, so this profile stays in the athletic bucket.
	inputs := storage.UserInputs{
		Age:      30,
		Gender:   "male",
		Height:   180,
		Weight:   80.85,
		Activity: "moderate",
	}

	assessed := ruleBasedAssessment(inputs, 18)

	if assessed.BodyType != "Mesomorph (naturally athletic)" {
		t.Fatalf("expected mesomorph classification, got %q", assessed.BodyType)
	}
	if assessed.BodyShape != "Athletic/V-shape potential" {
		t.Fatalf("expected athletic shape, got %q", assessed.BodyShape)
	}
	for _, problem := range assessed.HealthProblems {
		if problem == "BMI indicates overweight - gradual weight loss recommended" {
			t.Fatalf("overweight flag fired for exact bmi below 25: %v", assessed.HealthProblems)
		}
	}
}
