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

package resummarize

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/core"
	"github.com/poiesic/recapit/storage"
)

// Config holds configuration for the resummarization operation.
type Config struct {
	// BatchSize is the number of results to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of results)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed generations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// ModelName is stamped on every regenerated result
	ModelName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Resummarizer orchestrates the regeneration of all stored summaries.
type Resummarizer struct {
	repo      storage.ResultRepository
	generator ai.Generator
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ResultIterator
}

// NewResummarizer creates a new resummarizer.
// progress: where to write progress output (typically os.Stderr)
func NewResummarizer(repo storage.ResultRepository, generator ai.Generator, config *Config, progress io.Writer) *Resummarizer {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, generator, config.ModelName, config.MaxRetries, config.RetryDelay)
	iterator := NewResultIterator(repo, config.BatchSize)

	return &Resummarizer{
		repo:      repo,
		generator: generator,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the resummarization operation.
// Every stored result with a transcript gets a freshly generated summary.
// Progress is reported to the configured writer.
func (r *Resummarizer) Run(ctx context.Context) error {
	// First, count total results
	startTime := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)

	allResults, err := r.repo.GetResultsByDateRange(ctx, startTime, endTime)
	if err != nil {
		return fmt.Errorf("failed to query results: %w", err)
	}

	totalResults := len(allResults)
	if totalResults == 0 {
		fmt.Fprintf(r.progress, "No results found in database (0 results)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting resummarization of %d results (batch size: %d)\n",
		totalResults, r.config.BatchSize)

	// Initialize progress tracker
	tracker := NewProgressTracker(r.progress, totalResults, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	updated := 0

	// Process all results in batches
	err = r.iterator.ForEach(ctx, func(results []*core.Result) error {
		n, err := r.processor.Process(ctx, results)
		updated += n
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(results)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	// Finish progress tracking
	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Resummarization complete. Updated %d of %d results in %v (%.1f results/sec)\n",
		updated, totalResults, elapsed.Round(time.Second), float64(totalResults)/elapsed.Seconds())

	return nil
}
