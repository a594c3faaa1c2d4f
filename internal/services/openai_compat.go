package services

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/logging"
)

// openAICompatProvider talks to any chat-completions endpoint that follows
// the OpenAI wire format (OpenRouter, Mistral).
type openAICompatProvider struct {
	name        string
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	timeout     time.Duration
	logger      logging.Logger
}

func NewOpenAICompatProvider(pc config.ProviderConfig, timeout time.Duration, logger logging.Logger) Provider {
	opts := []openaiopt.RequestOption{
		openaiopt.WithAPIKey(pc.APIKey),
		openaiopt.WithMaxRetries(0),
	}
	if pc.BaseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(pc.BaseURL))
	}

	return &openAICompatProvider{
		name:        pc.Name,
		client:      openai.NewClient(opts...),
		model:       pc.Model,
		temperature: pc.Temperature,
		maxTokens:   int64(pc.MaxTokens),
		timeout:     timeout,
		logger:      logger,
	}
}

func (o *openAICompatProvider) Name() string { return o.name }

// Generate implements Provider.
func (o *openAICompatProvider) Generate(ctx context.Context, prompt string) (string, bool) {
	return generateText(ctx, o.name, o.timeout, o.logger, o.generate, prompt)
}

func (o *openAICompatProvider) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(o.maxTokens),
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
