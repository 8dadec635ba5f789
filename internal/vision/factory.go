package vision

import (
	"strings"
	"time"

	"github.com/avdeyev/bodylens/internal/config"
)

const (
	ModeMock   = "mock"
	ModeNyckel = "nyckel"
)

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.VisionMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeNyckel:
		return NewNyckelProvider(cfg)
	default:
		return NewMockProvider(time.Duration(cfg.MockDelayMS) * time.Millisecond)
	}
}
