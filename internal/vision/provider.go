package vision

import "context"

// Estimate is a body-fat percentage estimate for one photo.
type Estimate struct {
	BodyFatPercentage float64 `json:"bodyFatPercentage"`
	Confidence        float64 `json:"confidence"`
}

// Provider classifies a body photo into a body-fat estimate.
type Provider interface {
	Classify(ctx context.Context, image []byte, contentType string) (Estimate, error)
}
