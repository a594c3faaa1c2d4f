package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/logging"
)

type geminiProvider struct {
	name        string
	client      *genai.Client
	modelName   string
	temperature float32
	topK        float32
	topP        float32
	maxTokens   int32
	timeout     time.Duration
	logger      logging.Logger
}

func NewGeminiProvider(pc config.ProviderConfig, timeout time.Duration, logger logging.Logger) (Provider, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  pc.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if pc.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: pc.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiProvider{
		name:        pc.Name,
		client:      client,
		modelName:   pc.Model,
		temperature: float32(pc.Temperature),
		topK:        pc.TopK,
		topP:        pc.TopP,
		maxTokens:   int32(pc.MaxTokens),
		timeout:     timeout,
		logger:      logger,
	}, nil
}

func (g *geminiProvider) Name() string { return g.name }

// Generate implements Provider.
func (g *geminiProvider) Generate(ctx context.Context, prompt string) (string, bool) {
	return generateText(ctx, g.name, g.timeout, g.logger, g.generate, prompt)
}

func (g *geminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxTokens,
	}
	if g.topK > 0 {
		topK := g.topK
		genConfig.TopK = &topK
	}
	if g.topP > 0 {
		topP := g.topP
		genConfig.TopP = &topP
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	g.logger.Debugf("📊 %s response received", g.name)

	return resp.Text(), nil
}
