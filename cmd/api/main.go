package main

import (
	"log"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/avdeyev/bodylens/internal/config"
	"github.com/avdeyev/bodylens/internal/httpserver"
)

func main() {
	cfg := config.Load()

	printStartupBanner(cfg)

	validateProductionConfig(cfg)

	server, err := httpserver.New(cfg)
	if err != nil {
		log.Fatalf("FATAL startup: %v", err)
	}

	log.Fatal(server.Start())
}

// printStartupBanner logs a one-time summary of the resolved configuration.
// No secrets are ever printed — only masked indicators ("set" / "not set").
func printStartupBanner(cfg *config.Config) {
	log.Println("========== BodyLens API ==========")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)
	log.Printf("  upload_max_mb    = %d", cfg.UploadMaxMB)
	log.Printf("  rate_limit_rps   = %d (burst=%d)", cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ---- Results store ----
	log.Println("---- results ----")
	log.Printf("  capacity         = %d", cfg.ResultsCapacity)
	log.Printf("  ttl_minutes      = %d", cfg.ResultsTTLMinutes)

	// ---- Blob / S3 ----
	log.Println("---- blob ----")
	log.Printf("  blob_mode        = %s", cfg.Blob.Mode)
	if cfg.Blob.Mode != config.BlobModeMemory {
		log.Printf("  s3: %s", cfg.Blob.S3.DiagnosticsSummary())
	}

	// ---- AI ----
	log.Println("---- ai ----")
	log.Printf("  ai_mode          = %s", cfg.AIMode)
	if cfg.AIMode == config.AIModeOpenRouter {
		log.Printf("  openrouter_api_key = %s", setOrNot(cfg.OpenRouterAPIKey))
		log.Printf("  plan_model       = %s", cfg.PlanModel)
		log.Printf("  modify_model     = %s", cfg.ModifyModel)
		log.Printf("  analysis_model   = %s", cfg.AnalysisModel)
	}

	// ---- Vision ----
	log.Println("---- vision ----")
	log.Printf("  vision_mode      = %s", cfg.VisionMode)
	if cfg.VisionMode == config.VisionModeNyckel {
		log.Printf("  nyckel_api_key   = %s", setOrNot(cfg.NyckelAPIKey))
		log.Printf("  nyckel_client_id = %s", setOrNot(cfg.NyckelClientID))
	}

	log.Println("==================================")
}

// validateProductionConfig performs fatal checks that only matter in non-local envs.
func validateProductionConfig(cfg *config.Config) {
	isProd := cfg.Env == "production" || cfg.Env == "staging"

	// S3 hard-mode validation
	if cfg.Blob.Mode == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			log.Fatalf("FATAL blob: BLOB_MODE is 's3' but S3 config is incomplete — missing: %s", strings.Join(missing, ", "))
		}
	}

	// Real providers need their credentials in non-local envs
	if cfg.AIMode == config.AIModeOpenRouter && strings.TrimSpace(cfg.OpenRouterAPIKey) == "" {
		if isProd {
			log.Fatalf("FATAL ai: AI_MODE=openrouter but OPENROUTER_API_KEY is not set in %s", cfg.Env)
		}
		log.Printf("WARN: AI_MODE=openrouter without OPENROUTER_API_KEY — AI calls will fail and fall back to deterministic output")
	}

	if cfg.VisionMode == config.VisionModeNyckel {
		var missing []string
		if strings.TrimSpace(cfg.NyckelClientID) == "" && strings.TrimSpace(cfg.NyckelAPIKey) == "" {
			missing = append(missing, "NYCKEL_CLIENT_ID or NYCKEL_API_KEY")
		}
		if strings.TrimSpace(cfg.NyckelClientID) != "" && strings.TrimSpace(cfg.NyckelClientSecret) == "" {
			missing = append(missing, "NYCKEL_CLIENT_SECRET")
		}
		if len(missing) > 0 {
			if isProd {
				log.Fatalf("FATAL vision: VISION_MODE=nyckel but config is incomplete — missing: %s", strings.Join(missing, ", "))
			}
			log.Printf("WARN: VISION_MODE=nyckel with incomplete credentials (missing: %s) — estimates will fall back to deterministic output", strings.Join(missing, ", "))
		}
	}
}

// ---- helpers (no secrets) ----

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}
