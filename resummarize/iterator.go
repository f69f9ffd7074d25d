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
	"time"

	"github.com/poiesic/recapit/core"
	"github.com/poiesic/recapit/storage"
)

const (
	// DefaultBatchSize is the default number of results to fetch in each batch
	DefaultBatchSize = 100
)

// ResultIterator iterates over stored results in batches.
type ResultIterator struct {
	repo      storage.ResultRepository
	batchSize int
	start     time.Time
	end       time.Time
}

// NewResultIterator creates an iterator over every stored result.
// batchSize: number of results to process in each batch (must be > 0)
func NewResultIterator(repo storage.ResultRepository, batchSize int) *ResultIterator {
	return NewResultIteratorRange(repo, batchSize,
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC))
}

// NewResultIteratorRange creates an iterator over results created within
// [start, end).
func NewResultIteratorRange(repo storage.ResultRepository, batchSize int, start, end time.Time) *ResultIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ResultIterator{
		repo:      repo,
		batchSize: batchSize,
		start:     start,
		end:       end,
	}
}

// ForEach iterates over the selected results, calling fn for each batch.
// Iteration stops on first error from fn or when all results are processed.
// Context cancellation is checked between batches.
func (it *ResultIterator) ForEach(ctx context.Context, fn func([]*core.Result) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	results, err := it.repo.GetResultsByDateRange(ctx, it.start, it.end)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		return nil
	}

	// Process results in batches of batchSize
	for i := 0; i < len(results); i += it.batchSize {
		end := i + it.batchSize
		if end > len(results) {
			end = len(results)
		}

		batch := results[i:end]

		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
