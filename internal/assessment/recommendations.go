package assessment

import "strings"

// maxRecommendations caps the list; later categories are silently dropped
// once the cap is reached, so append order decides what survives.
const maxRecommendations = 6

// Recommend builds the ordered recommendation list. Categories append in a
// fixed sequence: age, activity level, body composition, then gender.
func Recommend(in Inputs) []string {
	recommendations := make([]string, 0, 10)

	// Age-based recommendations (ages 25-40 get neither block)
	if in.Age > 40 {
		recommendations = append(recommendations,
			"Focus on maintaining muscle mass with regular strength training",
			"Include flexibility and mobility work in your routine")
	} else if in.Age < 25 {
		recommendations = append(recommendations,
			"Take advantage of your age for building strong fitness habits",
			"Focus on developing proper exercise form and consistency")
	}

	// Activity level recommendations
	if in.Activity == "low" {
		recommendations = append(recommendations,
			"Start with 150 minutes of moderate activity per week",
			"Begin with walking, swimming, or cycling")
	} else if in.Activity == "very_high" {
		recommendations = append(recommendations,
			"Ensure adequate recovery time between intense sessions",
			"Monitor for signs of overtraining and burnout")
	}

	// Body composition recommendations
	if in.BodyFat < 10 {
		recommendations = append(recommendations,
			"Focus on performance and strength rather than further fat loss",
			"Ensure adequate nutrition to support your training")
	} else if in.BodyFat > 25 {
		recommendations = append(recommendations,
			"Create a moderate caloric deficit for sustainable fat loss",
			"Combine cardiovascular exercise with strength training")
	} else {
		recommendations = append(recommendations,
			"Maintain current body composition with consistent training",
			"Consider setting performance-based fitness goals")
	}

	// Gender-specific recommendations
	if strings.ToLower(strings.TrimSpace(in.Gender)) == "female" {
		recommendations = append(recommendations,
			"Include weight-bearing exercises to support bone health")
		if in.Age > 35 {
			recommendations = append(recommendations,
				"Consider calcium and vitamin D intake for bone health")
		}
	} else {
		recommendations = append(recommendations,
			"Focus on compound movements for overall strength development")
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}
