package enrichment

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phuslu/log"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider extracts keywords with the OpenAI chat completions API
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	log.Debug().Str("model", model).Msg("openai enrichment provider initialized")

	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) Enrich(ctx context.Context, text string) (*Result, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(text)),
		},
		MaxTokens:   openai.Int(llmMaxTokens),
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return nil, unavailable(p.Name(), errors.New("no choices in response"))
	}

	result, err := parseLLMResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, unavailable(p.Name(), err)
	}
	return result, nil
}
