package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avdeyev/bodylens/internal/assessment"
	"github.com/avdeyev/bodylens/internal/metabolism"
)

// MockProvider answers each prompt family with plausible JSON derived from
// the numbers it reads back out of the prompt. An optional delay simulates
// provider latency.
type MockProvider struct {
	delay time.Duration
}

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{delay: delay}
}

var (
	ageRe      = regexp.MustCompile(`Age:\s*(\d+)\s*years`)
	genderRe   = regexp.MustCompile(`Gender:\s*(\w+)`)
	heightRe   = regexp.MustCompile(`Height:\s*(\d+)\s*cm`)
	weightRe   = regexp.MustCompile(`Weight:\s*([\d.]+)\s*kg`)
	activityRe = regexp.MustCompile(`Activity Level:\s*([\w-]+)`)
	bodyFatRe  = regexp.MustCompile(`Body Fat Percentage:\s*([\d.]+)%`)
	targetRe   = regexp.MustCompile(`Target Daily Calories:\s*(\d+)`)
	goalRe     = regexp.MustCompile(`(?:Primary )?Goal:\s*([\w-]+)`)
	mealTypeRe = regexp.MustCompile(`Type:\s*(\w+)`)
	mealNameRe = regexp.MustCompile(`Name:\s*(.+)`)
	caloriesRe = regexp.MustCompile(`Calories:\s*(\d+)`)
	rangeRe    = regexp.MustCompile(`Target calorie range:\s*(\d+)\s*-\s*(\d+)`)
)

func (p *MockProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	prompt := req.Prompt
	switch {
	case strings.Contains(prompt, "7-day meal plan"):
		return p.mealPlanReply(prompt)
	case strings.Contains(prompt, "modify a meal"):
		return p.modifyMealReply(prompt)
	default:
		return p.analysisReply(prompt)
	}
}

// analysisReply runs the deterministic rule engine over demographics parsed
// back out of the prompt, so mock mode produces the same classifications the
// rule-based fallback would.
func (p *MockProvider) analysisReply(prompt string) (string, error) {
	age := matchInt(ageRe, prompt, 30)
	heightCM := matchInt(heightRe, prompt, 170)
	weightKG := matchFloat(weightRe, prompt, 70)
	gender := matchString(genderRe, prompt, "male")
	activity := matchString(activityRe, prompt, "moderate")
	bodyFat := matchFloat(bodyFatRe, prompt, 18)

	in := assessment.Inputs{
		Age:      age,
		Gender:   gender,
		HeightCM: heightCM,
		WeightKG: weightKG,
		Activity: activity,
		BMI:      metabolism.BMIExact(heightCM, weightKG),
		BodyFat:  bodyFat,
	}
	result := assessment.Assess(in)

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var mockMeals = map[string][]string{
	"breakfast": {
		"Greek Yogurt Parfait with Berries",
		"Oatmeal with Banana and Almonds",
		"Scrambled Eggs on Whole Grain Toast",
		"Cottage Cheese Bowl with Fruit",
		"Spinach and Feta Omelette",
		"Overnight Oats with Chia Seeds",
		"Whole Grain Pancakes with Yogurt",
	},
	"lunch": {
		"Grilled Chicken Salad with Quinoa",
		"Turkey and Avocado Wrap",
		"Lentil Soup with Whole Grain Bread",
		"Tuna Salad Bowl",
		"Chicken and Vegetable Stir-Fry",
		"Chickpea and Feta Salad",
		"Beef and Brown Rice Bowl",
	},
	"dinner": {
		"Baked Salmon with Roasted Vegetables",
		"Chicken Breast with Sweet Potato",
		"Turkey Meatballs with Zucchini Noodles",
		"Grilled White Fish with Rice and Salad",
		"Lean Beef Stir-Fry with Broccoli",
		"Baked Cod with Quinoa",
		"Tofu and Vegetable Curry with Rice",
	},
	"snack": {
		"Apple with Peanut Butter",
		"Handful of Mixed Nuts",
		"Greek Yogurt with Honey",
		"Carrot Sticks with Hummus",
		"Protein Shake",
		"Rice Cakes with Cottage Cheese",
		"Banana with Almond Butter",
	},
}

var dayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// macroSplits maps goals to protein/carbs/fat percentages, mirroring the
// guidelines the prompt gives the real model.
var macroSplits = map[string][3]int{
	"weight-loss":          {30, 35, 35},
	"weight-gain":          {25, 45, 30},
	"muscle-gain":          {35, 40, 25},
	"athletic-performance": {30, 50, 20},
	"maintenance":          {25, 45, 30},
}

func (p *MockProvider) mealPlanReply(prompt string) (string, error) {
	target := matchInt(targetRe, prompt, 2000)
	goal := matchString(goalRe, prompt, "maintenance")

	split, ok := macroSplits[goal]
	if !ok {
		split = macroSplits["maintenance"]
	}

	days := make([]map[string]any, 0, 7)
	weeklyCalories := 0
	for i, label := range dayLabels {
		meals := make([]map[string]any, 0, 4)
		dayTotal := 0
		for _, mealType := range []string{"breakfast", "lunch", "dinner", "snack"} {
			min, max := metabolism.MealCalorieRange(mealType, target)
			calories := (min + max) / 2
			dayTotal += calories
			meals = append(meals, mockMeal(mealType, i, calories, split))
		}
		days = append(days, map[string]any{
			"day":           label,
			"totalCalories": dayTotal,
			"meals":         meals,
		})
		weeklyCalories += dayTotal
	}

	plan := map[string]any{
		"mealPlan": days,
		"weeklyTotals": map[string]any{
			"avgDailyCalories": weeklyCalories / 7,
			"avgProtein":       fmt.Sprintf("%dg", weeklyCalories/7*split[0]/100/4),
			"avgCarbs":         fmt.Sprintf("%dg", weeklyCalories/7*split[1]/100/4),
			"avgFat":           fmt.Sprintf("%dg", weeklyCalories/7*split[2]/100/9),
		},
		"nutritionalGoals": map[string]any{
			"targetCalories": target,
			"proteinPercent": fmt.Sprintf("%d%%", split[0]),
			"carbsPercent":   fmt.Sprintf("%d%%", split[1]),
			"fatPercent":     fmt.Sprintf("%d%%", split[2]),
		},
		"notes": "Drink plenty of water and adjust portion sizes to your hunger levels. Meals can be swapped between days of the same type.",
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mockMeal(mealType string, dayIndex, calories int, split [3]int) map[string]any {
	names := mockMeals[mealType]
	name := names[dayIndex%len(names)]
	return map[string]any{
		"type":     mealType,
		"name":     name,
		"calories": calories,
		"protein":  fmt.Sprintf("%dg", calories*split[0]/100/4),
		"carbs":    fmt.Sprintf("%dg", calories*split[1]/100/4),
		"fat":      fmt.Sprintf("%dg", calories*split[2]/100/9),
		"ingredients": []string{
			"See recipe for " + name,
		},
		"instructions": "Prepare " + name + " using your preferred method.",
	}
}

func (p *MockProvider) modifyMealReply(prompt string) (string, error) {
	mealType := matchString(mealTypeRe, prompt, "snack")
	name := strings.TrimSpace(matchString(mealNameRe, prompt, "Meal"))
	calories := matchInt(caloriesRe, prompt, 400)

	targetCalories := calories
	if m := rangeRe.FindStringSubmatch(prompt); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		targetCalories = (min + max) / 2
	}

	reply := map[string]any{
		"modifiedMeal": map[string]any{
			"type":     mealType,
			"name":     "Lighter " + name,
			"calories": targetCalories,
			"protein":  fmt.Sprintf("%dg", targetCalories*25/100/4),
			"carbs":    fmt.Sprintf("%dg", targetCalories*45/100/4),
			"fat":      fmt.Sprintf("%dg", targetCalories*30/100/9),
			"ingredients": []string{
				"Adjusted portion of " + name,
				"Extra vegetables",
			},
			"instructions": "Prepare as before with the adjusted portions.",
		},
		"changes": map[string]any{
			"calorieChange": targetCalories - calories,
			"summary":       "Adjusted the meal toward the middle of its target calorie range.",
		},
		"nutritionalImpact": "Keeps the meal within its share of your daily calorie goal.",
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func matchInt(re *regexp.Regexp, s string, fallback int) int {
	if m := re.FindStringSubmatch(s); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}
	return fallback
}

func matchFloat(re *regexp.Regexp, s string, fallback float64) float64 {
	if m := re.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return fallback
}

func matchString(re *regexp.Regexp, s string, fallback string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return fallback
}
