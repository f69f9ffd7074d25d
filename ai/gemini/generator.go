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
	"context"
	"log/slog"

	"github.com/poiesic/recapit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator through the service's OpenAI-compatible
// chat endpoint.
type Generator struct {
	client      llms.Model
	model       string
	temperature float64
	cleaner     *ai.OutputCleaner
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host+"/v1beta/openai"),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
		cleaner:     ai.NewOutputCleaner(),
		logger:      slog.Default().With("component", "gemini-generator"),
	}, nil
}

// NewGenerator creates a text generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateText produces a completion for the prompt, cleans conversational
// preambles out of it, and rejects output that is too short to be usable.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", &ai.GenerationError{Model: g.model, Reason: "model call failed", Err: err}
	}

	if len(response.Choices) < 1 {
		return "", &ai.GenerationError{Model: g.model, Reason: "no choices returned"}
	}

	cleaned := g.cleaner.Clean(response.Choices[0].Content)
	if err := ai.CheckLength(cleaned, g.model); err != nil {
		return "", err
	}

	g.logger.Debug("generated text", "prompt_len", len(prompt), "output_len", len(cleaned))
	return cleaned, nil
}
