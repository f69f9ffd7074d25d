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

// Package recapit assembles the summarization service: result storage,
// generative provider, object store, and caption source behind one facade.
package recapit

import (
	"context"
	"log/slog"

	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/ai/gemini"
	"github.com/poiesic/recapit/ingestion"
	"github.com/poiesic/recapit/objectstore"
	"github.com/poiesic/recapit/storage"
	"github.com/poiesic/recapit/storage/badger"
	"github.com/poiesic/recapit/transcript"
)

type Service struct {
	backend     *badger.Backend
	results     storage.ResultRepository
	provider    ai.AIProvider
	store       objectstore.Downloader
	transcripts transcript.Source
	aiConfig    *ai.Config
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig    *ai.Config
	storeConfig *objectstore.Config
	captionsURL string
	captionsKey string
}

// WithAIConfig sets the generative service configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithObjectStoreConfig enables video summarization from an S3-compatible
// object store.
func WithObjectStoreConfig(cfg objectstore.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.storeConfig = &cfg
	}
}

// WithCaptionSource enables remote transcript fetching from a captions API.
func WithCaptionSource(baseURL, apiKey string) ServiceOption {
	return func(o *serviceOptions) {
		o.captionsURL = baseURL
		o.captionsKey = apiKey
	}
}

// NewService opens the result database and constructs the configured
// providers. On a partial failure everything already opened is closed.
func NewService(ctx context.Context, filePath string, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create result repository
	results, err := badger.NewResultRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := gemini.NewProvider(options.aiConfig)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}

	svc := &Service{
		backend:  backend,
		results:  results,
		provider: provider,
		aiConfig: options.aiConfig,
		logger:   slog.Default(),
	}

	if options.storeConfig != nil {
		store, err := objectstore.NewClient(ctx, *options.storeConfig)
		if err != nil {
			provider.Close()
			results.Close()
			backend.Close()
			return nil, err
		}
		svc.store = store
	}

	if options.captionsURL != "" {
		svc.transcripts = transcript.NewHTTPSource(options.captionsURL, options.captionsKey)
	}

	return svc, nil
}

func (s *Service) Close() error {
	// Close AI provider first
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := s.results.Close(); err != nil {
		s.logger.Error("error closing result repository", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) Results() storage.ResultRepository {
	return s.results
}

func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

// NewPipeline builds a summarization pipeline wired to the service's
// repository, provider, object store, and caption source. Additional options
// are applied after the wiring and may override it.
func (s *Service) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	base := []ingestion.Option{
		ingestion.WithModelName(s.aiConfig.Model),
	}
	if s.store != nil {
		base = append(base, ingestion.WithObjectStore(s.store))
	}
	if s.transcripts != nil {
		base = append(base, ingestion.WithTranscriptSource(s.transcripts))
	}
	return ingestion.NewPipeline(s.results, s.provider, append(base, opts...)...)
}
