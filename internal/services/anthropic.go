package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/logging"
)

type anthropicProvider struct {
	name        string
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
	timeout     time.Duration
	logger      logging.Logger
}

func NewAnthropicProvider(pc config.ProviderConfig, timeout time.Duration, logger logging.Logger) Provider {
	opts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(pc.APIKey),
		anthropicopt.WithMaxRetries(0),
	}
	if pc.BaseURL != "" {
		opts = append(opts, anthropicopt.WithBaseURL(pc.BaseURL))
	}

	return &anthropicProvider{
		name:        pc.Name,
		client:      anthropic.NewClient(opts...),
		model:       pc.Model,
		temperature: pc.Temperature,
		maxTokens:   int64(pc.MaxTokens),
		timeout:     timeout,
		logger:      logger,
	}
}

func (a *anthropicProvider) Name() string { return a.name }

// Generate implements Provider.
func (a *anthropicProvider) Generate(ctx context.Context, prompt string) (string, bool) {
	return generateText(ctx, a.name, a.timeout, a.logger, a.generate, prompt)
}

func (a *anthropicProvider) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   a.maxTokens,
		Temperature: anthropic.Float(a.temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	if resp == nil || len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.AsText().Text)
		}
	}

	return strings.Join(parts, "\n"), nil
}
