package enrichment

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phuslu/log"
)

const defaultClaudeModel = "claude-3-5-haiku-latest"

// ClaudeProvider extracts keywords with the Anthropic Messages API
type ClaudeProvider struct {
	client anthropic.Client
	model  string
}

func NewClaudeProvider(apiKey, model string) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if model == "" {
		model = defaultClaudeModel
	}

	log.Debug().Str("model", model).Msg("claude enrichment provider initialized")

	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (p *ClaudeProvider) Name() string { return ProviderAnthropic }

func (p *ClaudeProvider) Enrich(ctx context.Context, text string) (*Result, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: llmMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text))),
		},
	})
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}

	var reply strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	result, err := parseLLMResponse(reply.String())
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	return result, nil
}
