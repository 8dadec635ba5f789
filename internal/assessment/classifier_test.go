package assessment

import (
	"reflect"
	"strings"
	"testing"
)

func TestBodyTypeRuleOrder(t *testing.T) {
	cases := []struct {
		bmi     float64
		bodyFat float64
		want    string
	}{
		{17, 12, "Ectomorph (naturally lean)"},
		{22, 15, "Mesomorph (naturally athletic)"},
		{27, 28, "Endomorph (higher body fat tendency)"},
		// High BMI with low body fat: Ectomorph and Mesomorph fail,
		// the bmi>=25 clause of Endomorph matches.
		{26, 12, "Endomorph (higher body fat tendency)"},
		// Low BMI, body fat too high for Ectomorph, too low for Endomorph.
		{17, 18, "Mixed body type"},
		{22, 22, "Mixed body type"},
	}
	for _, c := range cases {
		if got := BodyType(c.bmi, c.bodyFat); got != c.want {
			t.Fatalf("bmi=%v bodyFat=%v: expected %q, got %q", c.bmi, c.bodyFat, c.want, got)
		}
	}
}

func TestBodyShape(t *testing.T) {
	cases := []struct {
		gender string
		bmi    float64
		want   string
	}{
		{"male", 22, "Athletic/V-shape potential"},
		{"male", 27, "Apple shape tendency"},
		{"female", 22, "Rectangle to hourglass potential"},
		{"female", 27, "Pear to apple shape tendency"},
	}
	for _, c := range cases {
		if got := BodyShape(c.gender, c.bmi); got != c.want {
			t.Fatalf("%s/%v: expected %q, got %q", c.gender, c.bmi, c.want, got)
		}
	}
}

func TestHealthFlagsBMIChainIsMutuallyExclusive(t *testing.T) {
	obese := HealthFlags(Inputs{BMI: 31, BodyFat: 20, Activity: "moderate"})
	if len(obese) != 1 || !strings.Contains(obese[0], "obesity") {
		t.Fatalf("expected single obesity flag, got %v", obese)
	}

	overweight := HealthFlags(Inputs{BMI: 26, BodyFat: 20, Activity: "moderate"})
	if len(overweight) != 1 || !strings.Contains(overweight[0], "overweight") {
		t.Fatalf("expected single overweight flag, got %v", overweight)
	}

	underweight := HealthFlags(Inputs{BMI: 17, BodyFat: 20, Activity: "moderate"})
	if len(underweight) != 1 || !strings.Contains(underweight[0], "underweight") {
		t.Fatalf("expected single underweight flag, got %v", underweight)
	}
}

func TestHealthFlagsCombinedLowActivityUses23(t *testing.T) {
	// BMI 24 is below the standalone overweight threshold but above 23,
	// so only the combined flag fires.
	flags := HealthFlags(Inputs{BMI: 24, BodyFat: 20, Activity: "low"})
	if len(flags) != 1 || !strings.Contains(flags[0], "Low activity level") {
		t.Fatalf("expected combined low-activity flag, got %v", flags)
	}

	// BMI 23 exactly does not trip the combined rule.
	flags = HealthFlags(Inputs{BMI: 23, BodyFat: 20, Activity: "low"})
	if len(flags) != 1 || !strings.Contains(flags[0], "No significant concerns") {
		t.Fatalf("expected placeholder only, got %v", flags)
	}
}

func TestHealthFlagsOrderAndAccumulation(t *testing.T) {
	flags := HealthFlags(Inputs{BMI: 31, BodyFat: 32, Activity: "low"})
	want := []string{
		"BMI indicates obesity - consider consulting healthcare provider",
		"High body fat percentage may increase health risks",
		"Low activity level combined with higher BMI",
	}
	if !reflect.DeepEqual(flags, want) {
		t.Fatalf("expected %v, got %v", want, flags)
	}
}

func TestHealthFlagsNeverEmpty(t *testing.T) {
	for _, in := range []Inputs{
		{BMI: 22, BodyFat: 15, Activity: "moderate"},
		{BMI: 17, BodyFat: 5, Activity: "low"},
		{BMI: 35, BodyFat: 40, Activity: "low"},
		{BMI: 20, BodyFat: 10, Activity: "high"},
	} {
		if flags := HealthFlags(in); len(flags) == 0 {
			t.Fatalf("healthProblems must never be empty, inputs=%+v", in)
		}
	}
}

func TestHealthFlagsLowBodyFat(t *testing.T) {
	flags := HealthFlags(Inputs{BMI: 20, BodyFat: 6, Activity: "moderate"})
	if len(flags) != 1 || !strings.Contains(flags[0], "hormonal") {
		t.Fatalf("expected hormonal-risk flag, got %v", flags)
	}
}

func TestDetailedAnalysisMentionsProfile(t *testing.T) {
	in := Inputs{Age: 25, Gender: "male", HeightCM: 180, WeightKG: 75, Activity: "moderate", BMI: 23.1, BodyFat: 15}
	text := DetailedAnalysis(in)

	for _, fragment := range []string{
		"25-year-old male",
		"180cm",
		"75kg",
		"BMI is 23.1",
		"body fat is 15%",
		"mesomorph (naturally athletic)",
		"Your weight is in a healthy range.",
		"Your current activity level is beneficial for health.",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected analysis to contain %q, got: %s", fragment, text)
		}
	}
}

func TestDetailedAnalysisLowActivityBranch(t *testing.T) {
	in := Inputs{Age: 50, Gender: "female", HeightCM: 165, WeightKG: 80, Activity: "low", BMI: 29.4, BodyFat: 32}
	text := DetailedAnalysis(in)

	if !strings.Contains(text, "Consider gradual lifestyle changes for optimal health.") {
		t.Fatalf("expected lifestyle-change note, got: %s", text)
	}
	if !strings.Contains(text, "Increasing physical activity could provide significant health benefits.") {
		t.Fatalf("expected activity note, got: %s", text)
	}
}
