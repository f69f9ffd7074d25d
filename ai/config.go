// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for generative service providers.
type Config struct {
	// Host is the base URL of the generative file/LLM service.
	// Example: "https://generativelanguage.googleapis.com"
	Host string

	// APIKey authenticates requests against the service.
	APIKey string

	// Model is the generation model identifier.
	// Example: "gemini-2.0-flash"
	Model string

	// Temperature controls generation randomness. Summaries want it low.
	// Default: 0.2
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the generative service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the service API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the generation model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTemperature sets the generation temperature.
func WithTemperature(temp float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temp
	}
}

// DefaultConfig returns a Config with sensible defaults for the public
// Gemini API. The API key has no default and must always be provided.
func DefaultConfig() *Config {
	return &Config{
		Host:        "https://generativelanguage.googleapis.com",
		Model:       "gemini-2.0-flash",
		Temperature: 0.2,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	    WithModel("gemini-2.0-flash"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes on the host break path joining in the REST clients.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(c.Host, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
