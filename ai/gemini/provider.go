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

package gemini

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/recapit/ai"
)

// Provider implements ai.AIProvider against a Gemini-style API.
// It manages generator, file client, and analyzer instances sharing one
// HTTP client.
type Provider struct {
	config    *ai.Config
	generator *Generator
	files     *FileClient
	analyzer  *Analyzer
	logger    *slog.Logger
}

// NewProvider creates a new AI provider. The config is validated and
// normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to Gemini-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpc := &http.Client{Timeout: 5 * time.Minute}

	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	files, err := newFileClient(config, httpc)
	if err != nil {
		return nil, err
	}

	analyzer, err := newAnalyzer(config, httpc)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		generator: generator,
		files:     files,
		analyzer:  analyzer,
		logger:    slog.Default().With("component", "gemini-provider"),
	}, nil
}

// Generator returns the text generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Files returns the remote file staging service.
func (p *Provider) Files() ai.FileStore {
	return p.files
}

// VideoAnalyzer returns the video analysis service.
func (p *Provider) VideoAnalyzer() ai.VideoAnalyzer {
	return p.analyzer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing gemini provider")
	return nil
}
