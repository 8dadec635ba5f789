package metabolism

import (
	"math"
	"strings"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// Unrecognized levels fall back to sedentary (1.2).
var activityMultipliers = map[string]float64{
	"low":       1.2,
	"moderate":  1.375,
	"high":      1.55,
	"very_high": 1.725,
}

// ActivityMultiplier resolves an activity level to its TDEE multiplier.
// Accepts both the snake_case and kebab-case spellings used by clients
// ("very_high" and "very-high", "moderate" and "moderate-activity").
func ActivityMultiplier(level string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(level))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.TrimSuffix(normalized, "_activity")

	if m, ok := activityMultipliers[normalized]; ok {
		return m
	}
	return 1.2
}

// Profile holds the demographic inputs every calculation derives from.
// Callers validate ranges before constructing one; height must be non-zero.
type Profile struct {
	Age      int
	Gender   string // male | female
	HeightCM int
	WeightKG float64
	Activity string
}

// IsMale reports whether the profile gender resolves to male.
// Anything that is not "male" uses the female formula and floor.
func (p Profile) IsMale() bool {
	return strings.ToLower(strings.TrimSpace(p.Gender)) == "male"
}

// MetabolicProfile is the derived energy profile for one request.
type MetabolicProfile struct {
	BMI            float64 `json:"bmi"`
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories int     `json:"targetCalories"`
}

// BMIExact computes weight/(height_m)^2 without rounding. Classification
// rules compare the exact quotient against their thresholds; rounding is
// for display and API payloads only.
func BMIExact(heightCM int, weightKG float64) float64 {
	h := float64(heightCM) / 100.0
	return weightKG / (h * h)
}

// BMI computes weight/(height_m)^2 rounded to 1 decimal.
func BMI(heightCM int, weightKG float64) float64 {
	return math.Round(BMIExact(heightCM, weightKG)*10) / 10
}

// BMR computes the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(p Profile) float64 {
	bmr := 10*p.WeightKG + 6.25*float64(p.HeightCM) - 5*float64(p.Age)
	if p.IsMale() {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales BMR by the activity multiplier.
func TDEE(p Profile) float64 {
	return BMR(p) * ActivityMultiplier(p.Activity)
}

// TargetCalories maps a goal to a daily calorie target.
// The caloric offset is applied to the unrounded TDEE and rounded once at the
// end; the gender floor (1500 male / 1200 female) is applied unconditionally.
func TargetCalories(tdee float64, goal string, isMale bool) int {
	adjusted := tdee
	switch strings.ToLower(strings.TrimSpace(goal)) {
	case "weight-loss":
		adjusted = tdee - 500
	case "weight-gain":
		adjusted = tdee + 500
	case "muscle-gain":
		adjusted = tdee + 300
	case "athletic-performance":
		adjusted = tdee + 200
	}

	target := int(math.Round(adjusted))

	floor := 1200
	if isMale {
		floor = 1500
	}
	if target < floor {
		return floor
	}
	return target
}

// Compute derives the full metabolic profile for a goal in one call.
func Compute(p Profile, goal string) MetabolicProfile {
	tdee := TDEE(p)
	return MetabolicProfile{
		BMI:            BMI(p.HeightCM, p.WeightKG),
		BMR:            BMR(p),
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, goal, p.IsMale()),
	}
}

// mealCalorieWindows maps a meal type to its share of the daily target.
var mealCalorieWindows = map[string]struct{ min, max float64 }{
	"breakfast": {0.20, 0.30},
	"lunch":     {0.25, 0.35},
	"dinner":    {0.25, 0.35},
	"snack":     {0.05, 0.15},
}

// MealCalorieRange returns the calorie window for one meal of a day with the
// given total target. Unknown meal types use the snack window.
func MealCalorieRange(mealType string, dailyCalories int) (min, max int) {
	window, ok := mealCalorieWindows[strings.ToLower(strings.TrimSpace(mealType))]
	if !ok {
		window = mealCalorieWindows["snack"]
	}
	min = int(math.Round(float64(dailyCalories) * window.min))
	max = int(math.Round(float64(dailyCalories) * window.max))
	return min, max
}
