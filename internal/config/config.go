package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	BlobModeMemory = "memory"
	BlobModeS3     = "s3"
	BlobModeAuto   = "auto"
)

const (
	AIModeMock       = "mock"
	AIModeOpenRouter = "openrouter"
)

const (
	VisionModeMock   = "mock"
	VisionModeNyckel = "nyckel"
)

type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PresignTTLSeconds int
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

func (c S3Config) Diagnostics() (level string, code string, msg string) {
	allEmpty := strings.TrimSpace(c.Endpoint) == "" &&
		strings.TrimSpace(c.Region) == "" &&
		strings.TrimSpace(c.Bucket) == "" &&
		strings.TrimSpace(c.AccessKeyID) == "" &&
		strings.TrimSpace(c.SecretAccessKey) == ""

	if allEmpty {
		return "INFO", "s3_not_configured", "not configured (all empty)"
	}

	missing := c.MissingRequired()
	if len(missing) > 0 {
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	}

	return "INFO", "s3_ready", "ready"
}

// DiagnosticsSummary returns a detailed summary for logging (no secrets)
func (c S3Config) DiagnosticsSummary() string {
	accessKeyStatus := "not set"
	if strings.TrimSpace(c.AccessKeyID) != "" {
		accessKeyStatus = "set"
	}
	secretKeyStatus := "not set"
	if strings.TrimSpace(c.SecretAccessKey) != "" {
		secretKeyStatus = "set"
	}

	return fmt.Sprintf("endpoint=%s region=%s bucket=%s presign_ttl=%ds access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		c.PresignTTLSeconds,
		accessKeyStatus,
		secretKeyStatus,
	)
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

type BlobConfig struct {
	Mode string // memory|s3|auto
	S3   S3Config
}

// Config holds the application configuration
type Config struct {
	Env      string // local | staging | prod
	Port     int
	LogLevel string

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Uploads
	UploadMaxMB int

	// Photo storage
	Blob BlobConfig

	// Results store
	ResultsCapacity   int
	ResultsTTLMinutes int

	// AI (chat completions)
	AIMode            string // mock | openrouter
	AIMaxOutputTokens int
	AITemperature     float64
	AITimeoutSeconds  int
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	PlanModel         string
	ModifyModel       string
	AnalysisModel     string
	AppReferer        string
	AppTitle          string

	// Vision (body composition classifier)
	VisionMode         string // mock | nyckel
	NyckelAPIKey       string
	NyckelClientID     string
	NyckelClientSecret string

	// Simulated latency for mock providers
	MockDelayMS int
}

// DebugErrors reports whether 500 responses may carry debug details.
func (c *Config) DebugErrors() bool {
	return c.Env == "local"
}

// Load reads configuration from environment variables
func Load() *Config {
	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// PORT (default: 8080)
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	// LOG_LEVEL (default: debug)
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- CORS ----------
	corsOrigins := parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env)
	corsAllowCreds := parseBoolEnv("CORS_ALLOW_CREDENTIALS")

	// ---------- Rate Limiting ----------
	rateLimitRPS := envInt("RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("RATE_LIMIT_BURST", 0)

	// ---------- Uploads ----------
	uploadMaxMB := envInt("UPLOAD_MAX_MB", 10)
	if uploadMaxMB <= 0 {
		uploadMaxMB = 10
	}

	// ---------- Blob / S3 ----------
	blobMode := parseBlobMode("BLOB_MODE", BlobModeMemory)

	// S3_PRESIGN_TTL_SECONDS (default: 900, enforce > 0)
	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	s3Cfg := S3Config{
		Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
		Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
		AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
		SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
		PresignTTLSeconds: s3PresignTTL,
	}

	// ---------- Results store ----------
	resultsCapacity := envInt("RESULTS_CAPACITY", 1000)
	if resultsCapacity <= 0 {
		resultsCapacity = 1000
	}
	resultsTTLMinutes := envInt("RESULTS_TTL_MINUTES", 120)
	if resultsTTLMinutes <= 0 {
		resultsTTLMinutes = 120
	}

	// ---------- AI ----------
	aiMode := strings.ToLower(strings.TrimSpace(os.Getenv("AI_MODE")))
	if aiMode == "" {
		aiMode = AIModeMock
	}
	if aiMode != AIModeMock && aiMode != AIModeOpenRouter {
		log.Printf("WARNING: unknown AI_MODE=%q, fallback to %s", aiMode, AIModeMock)
		aiMode = AIModeMock
	}

	aiMaxOutputTokens := envInt("AI_MAX_OUTPUT_TOKENS", 4000)
	if aiMaxOutputTokens <= 0 {
		aiMaxOutputTokens = 4000
	}

	aiTemperature := envFloat("AI_TEMPERATURE", 0.7)
	if aiTemperature < 0 {
		aiTemperature = 0
	}
	if aiTemperature > 2 {
		aiTemperature = 2
	}

	aiTimeoutSeconds := envInt("AI_TIMEOUT_SECONDS", 30)
	if aiTimeoutSeconds <= 0 {
		aiTimeoutSeconds = 30
	}

	openRouterAPIKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	openRouterBaseURL := strings.TrimSpace(os.Getenv("OPENROUTER_BASE_URL"))
	if openRouterBaseURL == "" {
		openRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	openRouterBaseURL = strings.TrimRight(openRouterBaseURL, "/")

	planModel := strings.TrimSpace(os.Getenv("AI_PLAN_MODEL"))
	if planModel == "" {
		planModel = "openai/gpt-oss-20b:free"
	}
	modifyModel := strings.TrimSpace(os.Getenv("AI_MODIFY_MODEL"))
	if modifyModel == "" {
		modifyModel = "anthropic/claude-3.5-sonnet"
	}
	analysisModel := strings.TrimSpace(os.Getenv("AI_ANALYSIS_MODEL"))
	if analysisModel == "" {
		analysisModel = "moonshotai/moonshot-v1-8k"
	}

	appReferer := strings.TrimSpace(os.Getenv("APP_REFERER"))
	if appReferer == "" {
		appReferer = "http://localhost:3000"
	}
	appTitle := strings.TrimSpace(os.Getenv("APP_TITLE"))
	if appTitle == "" {
		appTitle = "Body Analysis & Meal Planning App"
	}

	// ---------- Vision ----------
	visionMode := strings.ToLower(strings.TrimSpace(os.Getenv("VISION_MODE")))
	if visionMode == "" {
		visionMode = VisionModeMock
	}
	if visionMode != VisionModeMock && visionMode != VisionModeNyckel {
		log.Printf("WARNING: unknown VISION_MODE=%q, fallback to %s", visionMode, VisionModeMock)
		visionMode = VisionModeMock
	}

	nyckelAPIKey := strings.TrimSpace(os.Getenv("NYCKEL_API_KEY"))
	nyckelClientID := strings.TrimSpace(os.Getenv("NYCKEL_CLIENT_ID"))
	nyckelClientSecret := strings.TrimSpace(os.Getenv("NYCKEL_CLIENT_SECRET"))

	// MOCK_DELAY_MS (default: 0, clamp negatives)
	mockDelayMS := envInt("MOCK_DELAY_MS", 0)
	if mockDelayMS < 0 {
		mockDelayMS = 0
	}

	return &Config{
		Env:      env,
		Port:     port,
		LogLevel: logLevel,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,

		UploadMaxMB: uploadMaxMB,

		Blob: BlobConfig{
			Mode: blobMode,
			S3:   s3Cfg,
		},

		ResultsCapacity:   resultsCapacity,
		ResultsTTLMinutes: resultsTTLMinutes,

		AIMode:            aiMode,
		AIMaxOutputTokens: aiMaxOutputTokens,
		AITemperature:     aiTemperature,
		AITimeoutSeconds:  aiTimeoutSeconds,
		OpenRouterAPIKey:  openRouterAPIKey,
		OpenRouterBaseURL: openRouterBaseURL,
		PlanModel:         planModel,
		ModifyModel:       modifyModel,
		AnalysisModel:     analysisModel,
		AppReferer:        appReferer,
		AppTitle:          appTitle,

		VisionMode:         visionMode,
		NyckelAPIKey:       nyckelAPIKey,
		NyckelClientID:     nyckelClientID,
		NyckelClientSecret: nyckelClientSecret,

		MockDelayMS: mockDelayMS,
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:8081"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func parseBlobMode(key string, defaultVal string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	switch mode {
	case BlobModeMemory, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Printf("WARNING: unknown %s=%q, fallback to %s", key, mode, defaultVal)
		return defaultVal
	}
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
