package assessment

import (
	"fmt"
	"strings"
)

// Inputs are the pre-validated demographics plus the externally sourced
// body-fat estimate the rules run against.
type Inputs struct {
	Age      int
	Gender   string
	HeightCM int
	WeightKG float64
	Activity string
	BMI      float64
	BodyFat  float64
}

// Result is the deterministic assessment used whenever the AI narrative is
// unavailable, and as the ground truth the AI prompt is built from.
type Result struct {
	BodyType          string   `json:"bodyType"`
	BodyShape         string   `json:"bodyShape"`
	HealthProblems    []string `json:"healthProblems"`
	AdditionalDetails string   `json:"additionalDetails"`
	Recommendations   []string `json:"recommendations"`
}

// Assess runs the full rule engine over one set of inputs.
func Assess(in Inputs) Result {
	return Result{
		BodyType:          BodyType(in.BMI, in.BodyFat),
		BodyShape:         BodyShape(in.Gender, in.BMI),
		HealthProblems:    HealthFlags(in),
		AdditionalDetails: DetailedAnalysis(in),
		Recommendations:   Recommend(in),
	}
}

// BodyType classifies somatotype from BMI and body-fat percentage.
// Rules are checked in order; the first match wins. A high-BMI, low-body-fat
// profile still classifies Endomorph through the bmi>=25 clause because the
// two leaner rules have already failed.
func BodyType(bmi, bodyFat float64) string {
	switch {
	case bmi < 18.5 && bodyFat < 15:
		return "Ectomorph (naturally lean)"
	case bmi >= 18.5 && bmi < 25 && bodyFat < 20:
		return "Mesomorph (naturally athletic)"
	case bmi >= 25 || bodyFat > 25:
		return "Endomorph (higher body fat tendency)"
	default:
		return "Mixed body type"
	}
}

// BodyShape returns the tendency label for a gender/BMI pair.
func BodyShape(gender string, bmi float64) string {
	if strings.ToLower(strings.TrimSpace(gender)) == "male" {
		if bmi < 25 {
			return "Athletic/V-shape potential"
		}
		return "Apple shape tendency"
	}
	if bmi < 25 {
		return "Rectangle to hourglass potential"
	}
	return "Pear to apple shape tendency"
}

// HealthFlags accumulates health concern strings in a fixed order.
// Only one BMI-derived flag can fire (the chain is mutually exclusive);
// the combined low-activity rule intentionally uses BMI>23 rather than the
// standalone overweight threshold of 25.
// The returned list is never empty.
func HealthFlags(in Inputs) []string {
	problems := make([]string, 0, 4)

	if in.BMI > 30 {
		problems = append(problems, "BMI indicates obesity - consider consulting healthcare provider")
	} else if in.BMI > 25 {
		problems = append(problems, "BMI indicates overweight - gradual weight loss recommended")
	} else if in.BMI < 18.5 {
		problems = append(problems, "BMI indicates underweight - consider nutritional assessment")
	}

	if in.BodyFat > 30 {
		problems = append(problems, "High body fat percentage may increase health risks")
	} else if in.BodyFat < 8 {
		problems = append(problems, "Very low body fat may affect hormonal health")
	}

	if in.Activity == "low" && in.BMI > 23 {
		problems = append(problems, "Low activity level combined with higher BMI")
	}

	if len(problems) == 0 {
		problems = append(problems, "No significant concerns observed from available data")
	}

	return problems
}

// DetailedAnalysis builds the narrative paragraph for the fallback path.
func DetailedAnalysis(in Inputs) string {
	weightNote := "Consider gradual lifestyle changes for optimal health."
	if in.BMI < 25 {
		weightNote = "Your weight is in a healthy range."
	}

	activityNote := "Your current activity level is beneficial for health."
	if in.Activity == "low" {
		activityNote = "Increasing physical activity could provide significant health benefits."
	}

	return fmt.Sprintf(
		"Based on your profile (%d-year-old %s, %dcm, %gkg), your BMI is %.1f and body fat is %g%%. "+
			"You have a %s build with %s activity levels. %s %s "+
			"Regular monitoring and professional guidance can help optimize your fitness journey.",
		in.Age, in.Gender, in.HeightCM, in.WeightKG, in.BMI, in.BodyFat,
		strings.ToLower(BodyType(in.BMI, in.BodyFat)), in.Activity,
		weightNote, activityNote,
	)
}
