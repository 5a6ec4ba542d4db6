package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBytes = 1 << 20

// HTTPProvider calls a generic NLP REST endpoint. The request body is
// {"text": ...}; the response must carry "keywords" and/or "entities" arrays
// of {"text": ...} objects.
type HTTPProvider struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPProvider creates a provider posting to url
func NewHTTPProvider(url, apiKey string, timeout time.Duration) (*HTTPProvider, error) {
	if url == "" {
		return nil, errors.New("enrichment url is required for the http provider")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &HTTPProvider{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout, Transport: transport},
	}, nil
}

func (p *HTTPProvider) Name() string { return ProviderHTTP }

func (p *HTTPProvider) Enrich(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ContentOptimizer/1.0")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable(p.Name(), fmt.Errorf("status %d", resp.StatusCode))
	}

	result, err := decodeResult(raw)
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	return result, nil
}

// decodeResult parses a JSON annotation body and keeps it as Raw
func decodeResult(raw []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	result.Raw = json.RawMessage(raw)
	return &result, nil
}
