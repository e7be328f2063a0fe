package auth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AuthConfig holds verifier configuration for provider-issued credentials
type AuthConfig struct {
	Provider *ProviderConfig `yaml:"provider"`
}

// ProviderConfig describes the hosted auth provider whose tokens the service
// accepts alongside its own
type ProviderConfig struct {
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
	Secret   string `yaml:"secret"`
}

// LoadAuthConfig loads verifier configuration from a yaml file. A missing
// file is not an error: the service then accepts only its own tokens.
func LoadAuthConfig(configPath string) (*AuthConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &AuthConfig{}, nil
		}
		return nil, fmt.Errorf("error reading auth config file: %w", err)
	}

	var config AuthConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks provider settings when a provider is configured
func (c *AuthConfig) Validate() error {
	if c.Provider == nil {
		return nil
	}
	if c.Provider.Issuer == "" {
		return fmt.Errorf("auth provider issuer is required")
	}
	if c.Provider.Secret == "" {
		return fmt.Errorf("auth provider secret is required")
	}
	return nil
}
