package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avdeyev/bodylens/internal/config"
)

type OpenRouterProvider struct {
	apiKey     string
	baseURL    string
	referer    string
	title      string
	httpClient *http.Client
}

func NewOpenRouterProvider(cfg *config.Config) *OpenRouterProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	return &OpenRouterProvider{
		apiKey:  cfg.OpenRouterAPIKey,
		baseURL: strings.TrimRight(cfg.OpenRouterBaseURL, "/"),
		referer: cfg.AppReferer,
		title:   cfg.AppTitle,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	requestPayload := chatCompletionsRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    buildMessages(req),
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", p.referer)
	httpReq.Header.Set("X-Title", p.title)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openrouter request failed with status %d", resp.StatusCode)
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter response does not contain choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func buildMessages(req CompletionRequest) []chatMessageRequest {
	messages := make([]chatMessageRequest, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessageRequest{
			Role:    "system",
			Content: req.System,
		})
	}

	// Vision prompts carry the image as a second content part.
	if req.ImageDataURL != "" {
		messages = append(messages, chatMessageRequest{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: req.Prompt},
				{Type: "image_url", ImageURL: &imageURLPart{URL: req.ImageDataURL}},
			},
		})
		return messages
	}

	messages = append(messages, chatMessageRequest{
		Role:    "user",
		Content: req.Prompt,
	})
	return messages
}

type chatCompletionsRequest struct {
	Model       string               `json:"model"`
	Messages    []chatMessageRequest `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatMessageRequest struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
