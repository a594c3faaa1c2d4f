package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/logging"
)

// Provider is one remote text-generation service. Generate never fails: a
// transport error, a non-success status or an empty answer is reported as
// ok == false and callers fall back.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, bool)
}

// generator is the SDK-specific half of a provider; it may return errors,
// which generateText turns into an absent result.
type generator func(ctx context.Context, prompt string) (string, error)

func generateText(ctx context.Context, name string, timeout time.Duration, logger logging.Logger, gen generator, prompt string) (string, bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := safeGenerate(ctx, gen, prompt)
	if err != nil {
		logger.Warnf("⚠️  %s API temporarily unavailable: %v", name, err)
		return "", false
	}

	if strings.TrimSpace(text) == "" {
		logger.Warnf("⚠️  %s returned an empty response", name)
		return "", false
	}

	return text, true
}

func safeGenerate(ctx context.Context, gen generator, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during generation: %v", r)
		}
	}()
	return gen(ctx, prompt)
}

// unavailableProvider keeps a misconfigured provider in the chain so the
// order and count of providers stay fixed.
type unavailableProvider struct {
	name   string
	reason string
	logger logging.Logger
}

func (u *unavailableProvider) Name() string { return u.name }

func (u *unavailableProvider) Generate(_ context.Context, _ string) (string, bool) {
	u.logger.Debugf("%s skipped: %s", u.name, u.reason)
	return "", false
}

// BuildProviders turns the configured chain into providers, in order.
func BuildProviders(cfg config.ProvidersConfig, logger logging.Logger) []Provider {
	providers := make([]Provider, 0, len(cfg.Chain))

	for _, pc := range cfg.Chain {
		p, err := newProvider(pc, cfg.Timeout, logger)
		if err != nil {
			logger.Warnf("⚠️  %s provider disabled: %v", pc.Name, err)
			p = &unavailableProvider{name: pc.Name, reason: err.Error(), logger: logger}
		}
		providers = append(providers, p)
	}

	return providers
}

func newProvider(pc config.ProviderConfig, timeout time.Duration, logger logging.Logger) (Provider, error) {
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	if pc.APIKey == "" {
		return nil, fmt.Errorf("no API key configured (set %s)", pc.APIKeyEnv)
	}

	switch pc.Kind {
	case config.KindGemini:
		return NewGeminiProvider(pc, timeout, logger)
	case config.KindOpenAI:
		return NewOpenAICompatProvider(pc, timeout, logger), nil
	case config.KindAnthropic:
		return NewAnthropicProvider(pc, timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", pc.Kind)
	}
}
