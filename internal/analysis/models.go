package analysis

// Response is the payload returned by a completed analysis.
type Response struct {
	BodyFatPercentage float64  `json:"bodyFatPercentage"`
	Confidence        float64  `json:"confidence"`
	BodyType          string   `json:"bodyType"`
	BodyShape         string   `json:"bodyShape"`
	HealthProblems    []string `json:"healthProblems"`
	AdditionalDetails string   `json:"additionalDetails"`
	Recommendations   []string `json:"recommendations"`
	ResultID          string   `json:"resultId"`
}

// aiAssessment is the JSON shape the chat-completion provider is asked for.
type aiAssessment struct {
	BodyType          string   `json:"bodyType"`
	BodyShape         string   `json:"bodyShape"`
	HealthProblems    []string `json:"healthProblems"`
	AdditionalDetails string   `json:"additionalDetails"`
	Recommendations   []string `json:"recommendations"`
}
