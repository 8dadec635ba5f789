package ai

import "context"

// CompletionRequest is a single chat-completion call. Prompts are built by
// the call sites; ImageDataURL is set only for vision prompts.
type CompletionRequest struct {
	Model        string
	System       string
	Prompt       string
	ImageDataURL string
	MaxTokens    int
	Temperature  float64
}

// Provider produces raw assistant text for a completion request.
// Callers are responsible for extracting structured JSON from the text and
// for falling back to deterministic output when that fails.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
