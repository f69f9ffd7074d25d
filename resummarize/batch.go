package resummarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/chunk"
	"github.com/poiesic/recapit/core"
	"github.com/poiesic/recapit/storage"
)

// BatchProcessor regenerates summaries for batches of stored results.
type BatchProcessor struct {
	repo           storage.ResultRepository
	generator      ai.Generator
	modelName      string
	chunkSize      int
	overlapChars   int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// modelName: stamped on every regenerated result
// maxRetries: maximum number of retry attempts for generation calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ResultRepository, generator ai.Generator, modelName string, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		generator:      generator,
		modelName:      modelName,
		chunkSize:      chunk.DefaultChunkSize,
		overlapChars:   chunk.DefaultOverlapChars,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         slog.Default().With("component", "resummarize"),
	}
}

// Process regenerates the summary of every result in the batch from its
// stored transcript and updates it in storage. Results without a transcript
// are skipped: there is nothing to regenerate from.
// Returns the number of results actually updated.
func (bp *BatchProcessor) Process(ctx context.Context, results []*core.Result) (int, error) {
	updated := 0

	for _, result := range results {
		if result.Transcript == "" {
			bp.logger.Debug("skipping result without transcript", "id", result.Id, "source_id", result.SourceID)
			continue
		}

		var summary string
		err := RetryWithBackoff(ctx, func() error {
			var err error
			summary, err = bp.summarize(ctx, result.Transcript, result.Language)
			return err
		}, bp.maxRetries, bp.retryBaseDelay)

		if err != nil {
			return updated, fmt.Errorf("failed to regenerate summary for %d after %d attempts: %w",
				result.Id, bp.maxRetries, err)
		}

		result.Summary = summary
		result.Model = bp.modelName

		if _, err := bp.repo.UpdateResult(ctx, result); err != nil {
			return updated, fmt.Errorf("failed to update result %d: %w", result.Id, err)
		}
		updated++
	}

	return updated, nil
}

// summarize produces a fresh summary for one transcript, chunking long
// transcripts the same way a live run does.
func (bp *BatchProcessor) summarize(ctx context.Context, transcript, language string) (string, error) {
	if len(transcript) <= bp.chunkSize {
		return bp.generator.GenerateText(ctx, ai.SummaryPrompt(language, transcript))
	}

	chunks := chunk.Split(transcript, bp.chunkSize, bp.overlapChars)
	partials := make([]string, 0, len(chunks))
	for _, c := range chunks {
		partial, err := bp.generator.GenerateText(ctx, ai.SummaryPrompt(language, c))
		if err != nil {
			return "", err
		}
		partials = append(partials, partial)
	}

	if len(partials) == 1 {
		return partials[0], nil
	}
	return bp.generator.GenerateText(ctx, ai.CombinePrompt(language, partials))
}
