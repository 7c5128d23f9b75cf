package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific
// defaults. OpenRouter exposes an OpenAI-compatible API, so the
// underlying SDK is reused; an HTTP-Referer header is attached to every
// request, which OpenRouter uses for app attribution.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// refererTransport adds the HTTP-Referer header OpenRouter expects.
type refererTransport struct {
	referer string
	base    http.RoundTripper
}

func (t *refererTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", t.referer)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL
	if cfg.Referer != "" {
		config.HTTPClient = &http.Client{
			Transport: &refererTransport{referer: cfg.Referer},
		}
	}

	inner := newOpenAIProviderWithConfig(config, cfg.Model)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
