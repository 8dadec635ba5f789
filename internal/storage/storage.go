package storage

import (
	"context"
	"time"
)

// UserInputs are the validated demographics attached to a stored analysis.
type UserInputs struct {
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Height   int     `json:"height"`
	Weight   float64 `json:"weight"`
	Activity string  `json:"activity"`
}

// AnalysisRecord is one completed body analysis, retrievable by id until it
// expires or is evicted.
type AnalysisRecord struct {
	ID                string     `json:"resultId"`
	BodyFatPercentage float64    `json:"bodyFatPercentage"`
	Confidence        float64    `json:"confidence"`
	BodyType          string     `json:"bodyType"`
	BodyShape         string     `json:"bodyShape"`
	HealthProblems    []string   `json:"healthProblems"`
	AdditionalDetails string     `json:"additionalDetails"`
	Recommendations   []string   `json:"recommendations"`
	UserInputs        UserInputs `json:"userInputs"`
	PhotoKey          string     `json:"-"`
	PhotoContentType  string     `json:"-"`
	CreatedAt         time.Time  `json:"timestamp"`
}

// ResultsStorage is a short-lived keyed store for analysis results.
// Implementations bound both entry count and entry age; a Get after expiry
// returns nil without error.
type ResultsStorage interface {
	Put(ctx context.Context, record AnalysisRecord) error
	Get(ctx context.Context, id string) (*AnalysisRecord, error)
	Close() error
}
