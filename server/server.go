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

// Package server exposes summarization over HTTP: streaming run endpoints,
// cached result lookup, and a health check.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/recapit/ingestion"
	"github.com/poiesic/recapit/storage"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// DefaultMaxConcurrentRuns bounds how many summarization runs execute at
// once; runs beyond the bound are rejected with 503 rather than queued,
// since each holds an open response stream.
const DefaultMaxConcurrentRuns = 4

// Config holds the dependencies and settings for the HTTP server.
type Config struct {
	Addr              string
	Pipeline          *ingestion.Pipeline
	Results           storage.ResultRepository
	MaxConcurrentRuns int
	Logger            *slog.Logger
}

// Server is the HTTP front end for the summarization pipeline.
type Server struct {
	httpServer *http.Server
	pool       *ants.Pool
	logger     *slog.Logger
}

// NewServer creates the HTTP server and its bounded worker pool.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("server: Pipeline is required")
	}
	if cfg.Results == nil {
		return nil, errors.New("server: Results is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	logger := cfg.Logger.With("component", "server")

	size := cfg.MaxConcurrentRuns
	if size <= 0 {
		size = DefaultMaxConcurrentRuns
	}
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	router := NewRouter(routeConfig{
		pipeline:  cfg.Pipeline,
		results:   cfg.Results,
		pool:      pool,
		logger:    logger,
		startTime: time.Now(),
	})

	return &Server{
		httpServer: &http.Server{
			Addr:        cfg.Addr,
			Handler:     router,
			ReadTimeout: 15 * time.Second,
			// No WriteTimeout: streaming runs hold the response open for
			// as long as remote processing takes.
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		pool:   pool,
		logger: logger,
	}, nil
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the worker pool.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)
	s.pool.Release()
	return err
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
