package mealplans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/avdeyev/bodylens/internal/ai"
	"github.com/avdeyev/bodylens/internal/config"
	"github.com/avdeyev/bodylens/internal/metabolism"
)

// Validation errors surfaced as 400s by the handlers.
var (
	ErrMissingData       = errors.New("Missing required data. Please provide userProfile and mealPlanData.")
	ErrMissingProfile    = errors.New("Missing required user profile data. Please provide age, gender, height, weight, and activityLevel.")
	ErrMissingGoal       = errors.New("Missing goal. Please specify your primary goal.")
	ErrMissingModifyData = errors.New("Missing required data. Please provide currentMeal, userRequest, and userProfile.")
	ErrInvalidMeal       = errors.New("Invalid meal data. Missing name, type, or calories.")
	ErrRequestTooShort   = errors.New("Please provide a more detailed description of what you want to change.")
)

// Service generates and modifies meal plans through the chat-completion
// provider, degrading to deterministic replies when the provider or its
// output fails.
type Service struct {
	cfg *config.Config
	ai  ai.Provider
	now func() time.Time
}

func NewService(cfg *config.Config, aiProvider ai.Provider) *Service {
	return &Service{cfg: cfg, ai: aiProvider, now: time.Now}
}

// Generate produces a 7-day plan response. The returned map is the provider's
// parsed JSON (or the degraded shape) with metadata injected; errors are
// validation failures only.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (map[string]any, error) {
	if req.UserProfile == nil || req.MealPlanData == nil {
		return nil, ErrMissingData
	}

	profile := *req.UserProfile
	data := *req.MealPlanData

	if profile.Age == 0 || profile.Gender == "" || profile.Height == 0 || profile.Weight == 0 || profile.ActivityLevel == "" {
		return nil, ErrMissingProfile
	}
	if strings.TrimSpace(data.Goal) == "" {
		return nil, ErrMissingGoal
	}

	mp := metabolism.Compute(metabolism.Profile{
		Age:      profile.Age,
		Gender:   profile.Gender,
		HeightCM: profile.Height,
		WeightKG: profile.Weight,
		Activity: profile.ActivityLevel,
	}, data.Goal)

	response := s.completeJSON(ctx, ai.CompletionRequest{
		Model:       s.cfg.PlanModel,
		System:      planSystemMessage,
		Prompt:      generatePrompt(profile, data, mp),
		MaxTokens:   s.cfg.AIMaxOutputTokens,
		Temperature: s.cfg.AITemperature,
	})
	if response == nil {
		response = map[string]any{
			"error":    "Could not parse AI response",
			"mealPlan": []any{},
			"message":  "Please try again with different parameters.",
		}
	}

	response["metadata"] = GenerateMetadata{
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		UserProfile: mp,
		RequestID:   fmt.Sprintf("meal_%d", s.now().UnixMilli()),
	}
	return response, nil
}

// Modify adjusts a single meal. Provider failure falls back to a placeholder
// modification, never an error; errors are validation failures only.
func (s *Service) Modify(ctx context.Context, req ModifyRequest) (map[string]any, error) {
	if req.CurrentMeal == nil || strings.TrimSpace(req.UserRequest) == "" || req.UserProfile == nil {
		return nil, ErrMissingModifyData
	}

	meal := *req.CurrentMeal
	if meal.Name == "" || meal.Type == "" || meal.Calories == 0 {
		return nil, ErrInvalidMeal
	}
	userRequest := strings.TrimSpace(req.UserRequest)
	if len(userRequest) < 5 {
		return nil, ErrRequestTooShort
	}

	profile := *req.UserProfile
	var data MealPlanData
	if req.MealPlanData != nil {
		data = *req.MealPlanData
	}

	daily := metabolism.Compute(metabolism.Profile{
		Age:      profile.Age,
		Gender:   profile.Gender,
		HeightCM: profile.Height,
		WeightKG: profile.Weight,
		Activity: profile.ActivityLevel,
	}, data.Goal).TargetCalories
	rangeMin, rangeMax := metabolism.MealCalorieRange(strings.ToLower(meal.Type), daily)

	response := s.completeJSON(ctx, ai.CompletionRequest{
		Model:       s.cfg.ModifyModel,
		System:      modifySystemMessage,
		Prompt:      modifyPrompt(meal, userRequest, profile, data, rangeMin, rangeMax),
		MaxTokens:   1500,
		Temperature: 0.8,
	})
	if response == nil || !hasModifiedMealName(response) {
		response = placeholderModification(meal)
	}

	response["metadata"] = ModifyMetadata{
		ModifiedAt:   s.now().UTC().Format(time.RFC3339),
		OriginalMeal: meal,
		UserRequest:  userRequest,
		RequestID:    fmt.Sprintf("modify_%d", s.now().UnixMilli()),
	}
	return response, nil
}

// completeJSON calls the provider and parses the reply, returning nil on any
// failure so callers take their degraded path.
func (s *Service) completeJSON(ctx context.Context, req ai.CompletionRequest) map[string]any {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.AITimeoutSeconds)*time.Second)
	defer cancel()

	content, err := s.ai.Complete(callCtx, req)
	if err != nil {
		log.Printf("WARN mealplans: AI completion failed: %v", err)
		return nil
	}

	raw, err := ai.ExtractJSONObject(content)
	if err != nil {
		log.Printf("WARN mealplans: no JSON in AI response: %v", err)
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("WARN mealplans: AI response JSON invalid: %v", err)
		return nil
	}
	return parsed
}

func hasModifiedMealName(response map[string]any) bool {
	modified, ok := response["modifiedMeal"].(map[string]any)
	if !ok {
		return false
	}
	name, ok := modified["name"].(string)
	return ok && name != ""
}

func placeholderModification(meal Meal) map[string]any {
	return map[string]any{
		"modifiedMeal": map[string]any{
			"type":         meal.Type,
			"name":         "Modified " + meal.Name,
			"calories":     meal.Calories,
			"protein":      meal.Protein,
			"carbs":        meal.Carbs,
			"fat":          meal.Fat,
			"ingredients":  []string{"Modified meal ingredients"},
			"instructions": "Please try your request again for detailed instructions.",
		},
		"changes": map[string]any{
			"calorieChange": 0,
			"summary":       "Unable to process modification request. Please try again with different wording.",
		},
		"nutritionalImpact": "No changes were made.",
	}
}
