package mealplans

import "github.com/avdeyev/bodylens/internal/metabolism"

// UserProfile carries the demographics sent with meal plan requests.
type UserProfile struct {
	Age               int     `json:"age"`
	Gender            string  `json:"gender"`
	Height            int     `json:"height"`
	Weight            float64 `json:"weight"`
	ActivityLevel     string  `json:"activityLevel"`
	BodyFatPercentage float64 `json:"bodyFatPercentage,omitempty"`
}

// MealPlanData carries the goal and dietary context for a plan.
type MealPlanData struct {
	Goal         string `json:"goal"`
	Restrictions string `json:"restrictions,omitempty"`
	Preferences  string `json:"preferences,omitempty"`
}

// GenerateRequest is the body of POST /v1/mealplans/generate.
type GenerateRequest struct {
	UserProfile  *UserProfile  `json:"userProfile"`
	MealPlanData *MealPlanData `json:"mealPlanData"`
}

// Meal is one meal within a plan, also the subject of a modification.
type Meal struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	Calories     int      `json:"calories"`
	Protein      string   `json:"protein,omitempty"`
	Carbs        string   `json:"carbs,omitempty"`
	Fat          string   `json:"fat,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// ModifyRequest is the body of POST /v1/mealplans/modify.
type ModifyRequest struct {
	CurrentMeal  *Meal         `json:"currentMeal"`
	UserRequest  string        `json:"userRequest"`
	UserProfile  *UserProfile  `json:"userProfile"`
	MealPlanData *MealPlanData `json:"mealPlanData,omitempty"`
}

// GenerateMetadata is attached to every plan response, degraded or not.
type GenerateMetadata struct {
	GeneratedAt string                      `json:"generatedAt"`
	UserProfile metabolism.MetabolicProfile `json:"userProfile"`
	RequestID   string                      `json:"requestId"`
}

// ModifyMetadata is attached to every modification response.
type ModifyMetadata struct {
	ModifiedAt   string `json:"modifiedAt"`
	OriginalMeal Meal   `json:"originalMeal"`
	UserRequest  string `json:"userRequest"`
	RequestID    string `json:"requestId"`
}
