package mealplans

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avdeyev/bodylens/internal/metabolism"
)

const planSystemMessage = "You are a professional nutritionist and meal planning expert. Always respond with valid JSON format as requested."

const modifySystemMessage = "You are a professional nutritionist expert in meal modification and dietary planning. Always respond with valid JSON format as requested."

func generatePrompt(profile UserProfile, data MealPlanData, mp metabolism.MetabolicProfile) string {
	bodyFatLine := ""
	if profile.BodyFatPercentage > 0 {
		bodyFatLine = fmt.Sprintf("- Body Fat Percentage: %s%%\n", formatFloat(profile.BodyFatPercentage))
	}

	return fmt.Sprintf(`You are a professional nutritionist and meal planning expert. Create a comprehensive 7-day meal plan based on the following client information:

**Client Profile:**
- Age: %d years
- Gender: %s
- Height: %d cm
- Weight: %s kg
- Activity Level: %s
- BMI: %.1f
%s- Target Daily Calories: %d

**Goals & Preferences:**
- Primary Goal: %s
- Dietary Restrictions: %s
- Food Preferences: %s

**Requirements:**
1. Create a 7-day meal plan (Monday through Sunday)
2. Each day should include: Breakfast, Lunch, Dinner, and 1-2 Snacks
3. Meet the target calorie goal (±50 calories per day)
4. Ensure balanced macronutrients appropriate for the goal:
   - Weight Loss: Higher protein (30%%), moderate carbs (35%%), moderate fat (35%%)
   - Weight Gain: Balanced macros (25%% protein, 45%% carbs, 30%% fat)
   - Muscle Gain: High protein (35%%), moderate carbs (40%%), moderate fat (25%%)
   - Maintenance: Balanced (25%% protein, 45%% carbs, 30%% fat)
   - Athletic Performance: Higher carbs (30%% protein, 50%% carbs, 20%% fat)
5. Respect all dietary restrictions and preferences
6. Include variety and nutritionally dense foods
7. Provide practical, realistic meals that are achievable

**Output Format:**
Return a JSON object with the following structure:
{
  "mealPlan": [
    {
      "day": "Monday",
      "totalCalories": 1850,
      "meals": [
        {
          "type": "breakfast",
          "name": "Greek Yogurt Parfait with Berries",
          "calories": 320,
          "protein": "25g",
          "carbs": "35g",
          "fat": "8g",
          "ingredients": ["1 cup Greek yogurt", "1/2 cup mixed berries", "2 tbsp granola", "1 tsp honey"],
          "instructions": "Layer yogurt, berries, and granola. Drizzle with honey."
        }
      ]
    }
  ],
  "weeklyTotals": {
    "avgDailyCalories": 1845,
    "avgProtein": "128g",
    "avgCarbs": "185g",
    "avgFat": "65g"
  },
  "nutritionalGoals": {
    "targetCalories": %d,
    "proteinPercent": "25%%",
    "carbsPercent": "45%%",
    "fatPercent": "30%%"
  },
  "notes": "Additional tips or recommendations"
}

Ensure all meals are realistic, delicious, and aligned with the client's goals and restrictions.`,
		profile.Age,
		profile.Gender,
		profile.Height,
		formatFloat(profile.Weight),
		profile.ActivityLevel,
		mp.BMI,
		bodyFatLine,
		mp.TargetCalories,
		data.Goal,
		orDefault(data.Restrictions, "None specified"),
		orDefault(data.Preferences, "None specified"),
		mp.TargetCalories,
	)
}

func modifyPrompt(meal Meal, userRequest string, profile UserProfile, data MealPlanData, rangeMin, rangeMax int) string {
	bodyFatLine := ""
	if profile.BodyFatPercentage > 0 {
		bodyFatLine = fmt.Sprintf("- Body Fat Percentage: %s%%\n", formatFloat(profile.BodyFatPercentage))
	}

	return fmt.Sprintf(`You are a professional nutritionist helping to modify a meal based on a client's request.

**Current Meal:**
- Type: %s
- Name: %s
- Calories: %d
- Protein: %s
- Carbs: %s
- Fat: %s

**Client Request:**
"%s"

**Client Profile:**
- Age: %d years
- Gender: %s
- Height: %d cm
- Weight: %s kg
- Activity Level: %s
%s- Goal: %s
- Dietary Restrictions: %s
- Food Preferences: %s

**Requirements:**
1. Create a new meal that addresses the client's request
2. Keep the meal type the same (%s)
3. Target calorie range: %d - %d calories
4. Maintain appropriate macronutrient balance for their goal
5. Respect all dietary restrictions and preferences
6. Ensure the meal is practical and realistic to prepare
7. If the request is unclear or impossible, suggest the closest alternative

**Macronutrient Guidelines by Goal:**
- Weight Loss: Higher protein (30%%), moderate carbs (35%%), moderate fat (35%%)
- Weight Gain: Balanced (25%% protein, 45%% carbs, 30%% fat)
- Muscle Gain: High protein (35%%), moderate carbs (40%%), moderate fat (25%%)
- Maintenance: Balanced (25%% protein, 45%% carbs, 30%% fat)
- Athletic Performance: Higher carbs (30%% protein, 50%% carbs, 20%% fat)

**Output Format:**
Return a JSON object with this exact structure:
{
  "modifiedMeal": {
    "type": "%s",
    "name": "New Meal Name",
    "calories": 400,
    "protein": "25g",
    "carbs": "35g",
    "fat": "15g",
    "ingredients": ["ingredient 1", "ingredient 2", "ingredient 3"],
    "instructions": "Step-by-step preparation instructions"
  },
  "changes": {
    "calorieChange": -50,
    "summary": "Brief explanation of what was changed and why"
  },
  "nutritionalImpact": "Brief note about how this change affects their daily nutrition goals"
}

Provide a meal that closely matches their request while maintaining nutritional appropriateness.`,
		meal.Type,
		meal.Name,
		meal.Calories,
		orDefault(meal.Protein, "-"),
		orDefault(meal.Carbs, "-"),
		orDefault(meal.Fat, "-"),
		strings.TrimSpace(userRequest),
		profile.Age,
		profile.Gender,
		profile.Height,
		formatFloat(profile.Weight),
		profile.ActivityLevel,
		bodyFatLine,
		orDefault(data.Goal, "Not specified"),
		orDefault(data.Restrictions, "None"),
		orDefault(data.Preferences, "None"),
		meal.Type,
		rangeMin,
		rangeMax,
		meal.Type,
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
