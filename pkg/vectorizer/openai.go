package vectorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOpenAIModel is the model the profile embeddings are built with
	DefaultOpenAIModel = "text-embedding-3-small"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultTimeout       = 30 * time.Second
)

// OpenAIProvider implements Provider using the OpenAI embeddings API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	endpoint   string
	dimensions int
	client     *http.Client
}

// OpenAIConfig configures the OpenAI provider.
type OpenAIConfig struct {
	APIKey string
	// Model defaults to text-embedding-3-small
	Model string
	// BaseURL defaults to https://api.openai.com/v1
	BaseURL    string
	HTTPClient *http.Client
}

// NewOpenAIProvider creates a new OpenAI embedding provider.
func NewOpenAIProvider(config OpenAIConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	model := config.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	dimensions := modelDimensions(model)
	if dimensions == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModel, model)
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &OpenAIProvider{
		apiKey:     config.APIKey,
		model:      model,
		endpoint:   baseURL + "/embeddings",
		dimensions: dimensions,
		client:     client,
	}, nil
}

// NewFromConfig builds a Vectorizer from environment configuration.
func NewFromConfig(cfg Config) (*Vectorizer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	provider, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}

	return New(provider)
}

// Vectorize converts a single text into a vector embedding.
func (p *OpenAIProvider) Vectorize(ctx context.Context, text string) (Vector, error) {
	body, err := json.Marshal(openAIRequest{
		Model: p.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openAIErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
			switch {
			case resp.StatusCode == http.StatusTooManyRequests,
				strings.Contains(errResp.Error.Message, "rate limit"):
				return nil, fmt.Errorf("%w: %s", ErrRateLimitExceeded, errResp.Error.Message)
			case strings.Contains(errResp.Error.Message, "context length"):
				return nil, fmt.Errorf("%w: %s", ErrContextLengthExceeded, errResp.Error.Message)
			}
			return nil, fmt.Errorf("OpenAI API error: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("OpenAI API returned status %d: %s", resp.StatusCode, string(data))
	}

	var response openAIResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(response.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	return Vector(response.Data[0].Embedding), nil
}

// Dimensions returns the vector dimensions for the current model.
func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}

func modelDimensions(model string) int {
	switch model {
	case "text-embedding-3-small", "text-embedding-ada-002":
		return 1536
	case "text-embedding-3-large":
		return 3072
	default:
		return 0
	}
}

type openAIRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
