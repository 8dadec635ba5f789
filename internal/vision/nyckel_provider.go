package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avdeyev/bodylens/internal/config"
)

const (
	nyckelInvokeURL = "https://www.nyckel.com/v1/functions/body-fat-percentage/invoke"
	nyckelTokenURL  = "https://www.nyckel.com/connect/token"
)

// NyckelProvider calls the Nyckel image-classification API.
// Authentication prefers a static API key; otherwise an OAuth2
// client-credentials token is fetched and cached until shortly before expiry.
type NyckelProvider struct {
	apiKey       string
	clientID     string
	clientSecret string
	invokeURL    string
	tokenURL     string
	httpClient   *http.Client

	mu          sync.Mutex
	cachedToken string
	tokenExpiry time.Time
}

func NewNyckelProvider(cfg *config.Config) *NyckelProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	return &NyckelProvider{
		apiKey:       cfg.NyckelAPIKey,
		clientID:     cfg.NyckelClientID,
		clientSecret: cfg.NyckelClientSecret,
		invokeURL:    nyckelInvokeURL,
		tokenURL:     nyckelTokenURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *NyckelProvider) Classify(ctx context.Context, image []byte, contentType string) (Estimate, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return Estimate{}, err
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	body, err := json.Marshal(map[string]string{"data": dataURI})
	if err != nil {
		return Estimate{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.invokeURL, bytes.NewReader(body))
	if err != nil {
		return Estimate{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Estimate{}, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Estimate{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Estimate{}, fmt.Errorf("body fat classification failed with status %d", resp.StatusCode)
	}

	var parsed invokeResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return Estimate{}, err
	}

	return Estimate{
		BodyFatPercentage: bodyFatFromLabel(parsed.LabelName),
		Confidence:        confidenceFrom(parsed),
	}, nil
}

// accessToken returns the static API key when configured, otherwise a cached
// or freshly fetched client-credentials token.
func (p *NyckelProvider) accessToken(ctx context.Context) (string, error) {
	if p.apiKey != "" {
		return p.apiKey, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cachedToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.cachedToken, nil
	}

	if p.clientID == "" || p.clientSecret == "" {
		return "", fmt.Errorf("no API key or client credentials configured")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tokenData tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return "", err
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("no access token in response")
	}

	expiresIn := tokenData.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	p.cachedToken = tokenData.AccessToken
	// Renew one minute early so an in-flight request never carries a token
	// that expires mid-call.
	p.tokenExpiry = time.Now().Add(time.Duration(expiresIn-60) * time.Second)

	return p.cachedToken, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type invokeResponse struct {
	LabelName  string   `json:"labelName"`
	Confidence *float64 `json:"confidence"`
	Score      *float64 `json:"score"`
}

func confidenceFrom(resp invokeResponse) float64 {
	if resp.Confidence != nil {
		return *resp.Confidence
	}
	if resp.Score != nil {
		return *resp.Score
	}
	return defaultConfidence
}
