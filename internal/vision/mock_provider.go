package vision

import (
	"context"
	"hash/fnv"
	"math"
	"time"
)

// MockProvider produces a plausible estimate without calling any external
// service. The estimate is derived from a hash of the image bytes so the
// same photo always classifies the same way, which keeps demo flows and
// tests stable. An optional delay simulates classifier latency.
type MockProvider struct {
	delay time.Duration
}

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{delay: delay}
}

func (p *MockProvider) Classify(ctx context.Context, image []byte, contentType string) (Estimate, error) {
	_ = contentType

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return Estimate{}, ctx.Err()
		}
	}

	h := fnv.New64a()
	h.Write(image)
	sum := h.Sum64()

	// Body fat in [12, 30), confidence in [0.75, 0.95).
	bodyFat := 12 + float64(sum%1800)/100.0
	confidence := 0.75 + float64((sum/1800)%20)/100.0

	return Estimate{
		BodyFatPercentage: math.Round(bodyFat*10) / 10,
		Confidence:        math.Round(confidence*100) / 100,
	}, nil
}
