// Package enrichment fetches optional keyword and entity annotations from
// external NLP services. Every provider failure is reported as
// ErrUnavailable so callers can fall back to local analysis.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned for any provider failure: transport errors,
// non-success status, malformed bodies and timeouts.
var ErrUnavailable = errors.New("enrichment unavailable")

// Candidate is a keyword proposed by the provider
type Candidate struct {
	Text string `json:"text"`
}

// Entity is a named entity found in the text
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Result is the normalised provider response. Raw holds the provider body
// verbatim for passthrough to clients.
type Result struct {
	Keywords []Candidate    `json:"keywords"`
	Entities []Entity       `json:"entities"`
	Raw      json.RawMessage `json:"-"`
}

// Provider annotates text with keyword candidates and entities
type Provider interface {
	Name() string
	Enrich(ctx context.Context, text string) (*Result, error)
}

// Provider names accepted by New
const (
	ProviderNone      = "none"
	ProviderHTTP      = "http"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
)

// Config selects and configures a provider
type Config struct {
	Provider string
	URL      string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// New builds the configured provider. It returns a nil Provider for
// ProviderNone, which disables enrichment.
func New(ctx context.Context, cfg Config) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderHTTP:
		p, err = NewHTTPProvider(cfg.URL, cfg.APIKey, cfg.Timeout)
	case ProviderAnthropic:
		p, err = NewClaudeProvider(cfg.APIKey, cfg.Model)
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown enrichment provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, provider, err)
}
