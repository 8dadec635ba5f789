package metabolism

import (
	"math"
	"testing"
)

func TestBMRMaleReferenceProfile(t *testing.T) {
	p := Profile{Age: 25, Gender: "male", HeightCM: 180, WeightKG: 75, Activity: "moderate"}

	bmr := BMR(p)
	if bmr != 1755 {
		t.Fatalf("expected bmr=1755, got %v", bmr)
	}

	tdee := TDEE(p)
	if tdee != 2413.125 {
		t.Fatalf("expected tdee=2413.125, got %v", tdee)
	}
}

func TestBMRMaleAlwaysExceedsFemale(t *testing.T) {
	cases := []Profile{
		{Age: 13, HeightCM: 100, WeightKG: 30},
		{Age: 40, HeightCM: 170, WeightKG: 80},
		{Age: 100, HeightCM: 250, WeightKG: 300},
	}
	for _, c := range cases {
		male := c
		male.Gender = "male"
		female := c
		female.Gender = "female"

		diff := BMR(male) - BMR(female)
		if diff != 166 {
			t.Fatalf("expected male-female bmr diff of 166, got %v for %+v", diff, c)
		}
	}
}

func TestTargetCaloriesWeightLossAboveFloor(t *testing.T) {
	p := Profile{Age: 25, Gender: "male", HeightCM: 180, WeightKG: 75, Activity: "moderate"}

	target := TargetCalories(TDEE(p), "weight-loss", p.IsMale())
	if target != 1913 {
		t.Fatalf("expected target=1913, got %d", target)
	}
}

func TestTargetCaloriesFemaleFloorApplies(t *testing.T) {
	p := Profile{Age: 20, Gender: "female", HeightCM: 160, WeightKG: 45, Activity: "low"}

	bmr := BMR(p)
	if bmr != 1189 {
		t.Fatalf("expected bmr=1189, got %v", bmr)
	}

	tdee := TDEE(p)
	if math.Abs(tdee-1426.8) > 1e-9 {
		t.Fatalf("expected tdee=1426.8, got %v", tdee)
	}

	// Raw target 926.8 is below the female floor of 1200.
	if target := TargetCalories(tdee, "weight-loss", p.IsMale()); target != 1200 {
		t.Fatalf("expected floored target=1200, got %d", target)
	}
}

func TestTargetCaloriesFloorHoldsForEveryGoal(t *testing.T) {
	goals := []string{"weight-loss", "weight-gain", "muscle-gain", "athletic-performance", "maintenance", ""}
	profiles := []Profile{
		{Age: 20, Gender: "female", HeightCM: 160, WeightKG: 45, Activity: "low"},
		{Age: 90, Gender: "male", HeightCM: 150, WeightKG: 40, Activity: "low"},
		{Age: 30, Gender: "male", HeightCM: 190, WeightKG: 100, Activity: "very_high"},
	}
	for _, p := range profiles {
		floor := 1200
		if p.IsMale() {
			floor = 1500
		}
		for _, goal := range goals {
			if target := TargetCalories(TDEE(p), goal, p.IsMale()); target < floor {
				t.Fatalf("goal=%q profile=%+v: target %d below floor %d", goal, p, target, floor)
			}
		}
	}
}

func TestTargetCaloriesGoalOffsets(t *testing.T) {
	cases := []struct {
		goal string
		want int
	}{
		{"weight-loss", 1913},
		{"weight-gain", 2913},
		{"muscle-gain", 2713},
		{"athletic-performance", 2613},
		{"maintenance", 2413},
		{"something-else", 2413},
	}
	tdee := 2413.125
	for _, c := range cases {
		if got := TargetCalories(tdee, c.goal, true); got != c.want {
			t.Fatalf("goal=%q: expected %d, got %d", c.goal, c.want, got)
		}
	}
}

func TestActivityMultiplierAliases(t *testing.T) {
	cases := []struct {
		level string
		want  float64
	}{
		{"low", 1.2},
		{"moderate", 1.375},
		{"moderate-activity", 1.375},
		{"high", 1.55},
		{"very_high", 1.725},
		{"very-high", 1.725},
		{"VERY_HIGH", 1.725},
		{"couch", 1.2},
		{"", 1.2},
	}
	for _, c := range cases {
		if got := ActivityMultiplier(c.level); got != c.want {
			t.Fatalf("level=%q: expected %v, got %v", c.level, c.want, got)
		}
	}
}

func TestBMIRoundsToOneDecimal(t *testing.T) {
	// 75 / 1.8^2 = 23.148... → 23.1
	if got := BMI(180, 75); got != 23.1 {
		t.Fatalf("expected bmi=23.1, got %v", got)
	}
	if got := BMI(160, 45); got != 17.6 {
		t.Fatalf("expected bmi=17.6, got %v", got)
	}
}

func TestBMIExactKeepsBoundaryPrecision(t *testing.T) {
	// 80.85 / 1.8^2 = 24.9537... — exact value stays below 25 even though
	// the displayed BMI rounds up to it.
	exact := BMIExact(180, 80.85)
	if exact >= 25 {
		t.Fatalf("expected exact bmi below 25, got %v", exact)
	}
	if got := BMI(180, 80.85); got != 25.0 {
		t.Fatalf("expected rounded bmi=25.0, got %v", got)
	}
}

func TestMealCalorieRange(t *testing.T) {
	cases := []struct {
		mealType string
		daily    int
		wantMin  int
		wantMax  int
	}{
		{"breakfast", 2000, 400, 600},
		{"lunch", 2000, 500, 700},
		{"dinner", 2000, 500, 700},
		{"snack", 2000, 100, 300},
		{"Breakfast", 1913, 383, 574},
		{"brunch", 2000, 100, 300}, // unknown falls back to snack window
	}
	for _, c := range cases {
		min, max := MealCalorieRange(c.mealType, c.daily)
		if min != c.wantMin || max != c.wantMax {
			t.Fatalf("%s/%d: expected [%d,%d], got [%d,%d]", c.mealType, c.daily, c.wantMin, c.wantMax, min, max)
		}
	}
}

func TestMealCalorieRangeInvariants(t *testing.T) {
	for _, mealType := range []string{"breakfast", "lunch", "dinner", "snack", "unknown"} {
		for _, daily := range []int{0, 1, 1200, 2413, 6000} {
			min, max := MealCalorieRange(mealType, daily)
			if min < 0 || max < 0 || min > max {
				t.Fatalf("%s/%d: invalid range [%d,%d]", mealType, daily, min, max)
			}
		}
	}
}
