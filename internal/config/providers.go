package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type providersFile struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// LoadProviderChain reads an ordered provider chain from a YAML file.
// Credentials never live in the file; each entry names the environment
// variable that holds its key.
//
//	providers:
//	  - name: Gemini
//	    kind: gemini
//	    model: gemini-1.5-flash-latest
//	    api_key_env: GEMINI_API_KEY
//	    temperature: 0.7
//	    max_tokens: 2048
func LoadProviderChain(path string) ([]ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read providers file: %w", err)
	}
	return ParseProviderChain(data)
}

func ParseProviderChain(data []byte) ([]ProviderConfig, error) {
	var file providersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse providers file: %w", err)
	}

	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("providers file lists no providers")
	}

	seen := make(map[string]bool, len(file.Providers))
	for i := range file.Providers {
		p := &file.Providers[i]
		if p.Temperature == 0 {
			p.Temperature = 0.7
		}
		if p.APIKeyEnv != "" {
			p.APIKey = os.Getenv(p.APIKeyEnv)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("provider %s listed twice", p.Name)
		}
		seen[p.Name] = true
	}

	return file.Providers, nil
}
