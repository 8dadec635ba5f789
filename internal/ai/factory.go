package ai

import (
	"strings"
	"time"

	"github.com/avdeyev/bodylens/internal/config"
)

const (
	ModeMock       = "mock"
	ModeOpenRouter = "openrouter"
)

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeOpenRouter:
		return NewOpenRouterProvider(cfg)
	default:
		return NewMockProvider(time.Duration(cfg.MockDelayMS) * time.Millisecond)
	}
}
