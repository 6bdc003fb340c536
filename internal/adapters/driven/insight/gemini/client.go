// Package gemini implements the InsightGenerator driven port against a
// Gemini-style generateContent HTTP endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/quietpath/ripple/internal/core/domain"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/logger"
)

var _ driven.InsightGenerator = (*Client)(nil)

// Defaults for the generateContent endpoint.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"

	requestTimeout = 30 * time.Second
)

// Generation parameters are fixed configuration, not user-tunable.
const (
	genTemperature     = 0.7
	genTopP            = 0.95
	genTopK            = 40
	genMaxOutputTokens = 1024
)

// Client calls the generateContent endpoint. A client-side rate limiter
// throttles requests; the UI only ever has one in flight per user action.
type Client struct {
	mu         sync.RWMutex
	credential string
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customises the client.
type Option func(*Client)

// WithBaseURL overrides the endpoint base URL. Used by tests and by the
// insight.base_url config key.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// NewClient creates a client with no credential. It stays unavailable
// until SetCredential is called with a non-empty value.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: requestTimeout},
		// One request every two seconds with a small burst. Guided
		// reflection never needs more.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether a credential is held.
func (c *Client) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential != ""
}

// SetCredential replaces the credential used for requests.
func (c *Client) SetCredential(credential string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = credential
}

// Request and response shapes for the generateContent endpoint.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the generated text. Transport
// errors, non-2xx statuses, and responses without text all collapse into
// domain.ErrInsightRequest; the caller substitutes fallback copy.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.RLock()
	credential := c.credential
	baseURL := c.baseURL
	model := c.model
	c.mu.RUnlock()

	if credential == "" {
		return "", domain.ErrInsightUnavailable
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightRequest, err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}, Role: "user"}},
		GenerationConfig: generationConfig{
			Temperature:     genTemperature,
			TopP:            genTopP,
			TopK:            genTopK,
			MaxOutputTokens: genMaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightRequest, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, model, credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("insight endpoint unreachable: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrInsightRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("insight endpoint returned %d", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", domain.ErrInsightRequest, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightRequest, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightRequest, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: response missing text", domain.ErrInsightRequest)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
