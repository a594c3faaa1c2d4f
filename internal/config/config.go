package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"kayaai/career-navigator/internal/logging"
)

type ProviderKind string

const (
	KindGemini    ProviderKind = "gemini"
	KindOpenAI    ProviderKind = "openai"
	KindAnthropic ProviderKind = "anthropic"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	Providers ProvidersConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

type StorageConfig struct {
	MaxFileSize int64
}

type ProvidersConfig struct {
	Timeout time.Duration
	Chain   []ProviderConfig
}

// ProviderConfig describes one entry of the ordered provider chain.
type ProviderConfig struct {
	Name        string       `yaml:"name"`
	Kind        ProviderKind `yaml:"kind"`
	BaseURL     string       `yaml:"base_url"`
	Model       string       `yaml:"model"`
	APIKey      string       `yaml:"-"`
	APIKeyEnv   string       `yaml:"api_key_env"`
	Temperature float64      `yaml:"temperature"`
	MaxTokens   int          `yaml:"max_tokens"`
	TopK        float32      `yaml:"top_k"`
	TopP        float32      `yaml:"top_p"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logging.Default.Infof("No .env file found. Using default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Providers: ProvidersConfig{
			Timeout: getEnvAsDuration("PROVIDER_TIMEOUT", "30s"),
			Chain:   DefaultProviderChain(),
		},
	}

	if path := getEnv("PROVIDERS_FILE", ""); path != "" {
		chain, err := LoadProviderChain(path)
		if err != nil {
			logging.Default.Warnf("⚠️  Ignoring providers file %s: %v", path, err)
		} else {
			cfg.Providers.Chain = chain
		}
	}

	return cfg
}

// DefaultProviderChain is Gemini, then OpenRouter, then Mistral. A Claude
// entry is appended only when ANTHROPIC_API_KEY is set.
func DefaultProviderChain() []ProviderConfig {
	chain := []ProviderConfig{
		{
			Name:        "Gemini",
			Kind:        KindGemini,
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			APIKeyEnv:   "GEMINI_API_KEY",
			Temperature: getEnvAsFloat("GEMINI_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("GEMINI_MAX_TOKENS", 2048),
			TopK:        1,
			TopP:        1,
		},
		{
			Name:        "OpenRouter",
			Kind:        KindOpenAI,
			BaseURL:     getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1/"),
			Model:       getEnv("OPENROUTER_MODEL", "openai/gpt-3.5-turbo"),
			APIKey:      getEnv("OPENROUTER_API_KEY", ""),
			APIKeyEnv:   "OPENROUTER_API_KEY",
			Temperature: getEnvAsFloat("OPENROUTER_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("OPENROUTER_MAX_TOKENS", 2000),
		},
		{
			Name:        "Mistral",
			Kind:        KindOpenAI,
			BaseURL:     getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1/"),
			Model:       getEnv("MISTRAL_MODEL", "mistral-tiny"),
			APIKey:      getEnv("MISTRAL_API_KEY", ""),
			APIKeyEnv:   "MISTRAL_API_KEY",
			Temperature: getEnvAsFloat("MISTRAL_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("MISTRAL_MAX_TOKENS", 2000),
		},
	}

	if key := getEnv("ANTHROPIC_API_KEY", ""); key != "" {
		chain = append(chain, ProviderConfig{
			Name:        "Claude",
			Kind:        KindAnthropic,
			BaseURL:     getEnv("ANTHROPIC_BASE_URL", ""),
			Model:       getEnv("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
			APIKey:      key,
			APIKeyEnv:   "ANTHROPIC_API_KEY",
			Temperature: getEnvAsFloat("ANTHROPIC_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("ANTHROPIC_MAX_TOKENS", 2000),
		})
	}

	return chain
}

func (p ProviderConfig) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	switch p.Kind {
	case KindGemini, KindOpenAI, KindAnthropic:
	default:
		return fmt.Errorf("provider %s: unknown kind %q", p.Name, p.Kind)
	}
	if p.Model == "" {
		return fmt.Errorf("provider %s: model is required", p.Name)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("provider %s: max_tokens must be positive", p.Name)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
