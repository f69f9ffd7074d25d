package storage

import (
	"context"
	"time"

	"github.com/poiesic/recapit/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ResultRepository provides operations for managing summarization results.
type ResultRepository interface {
	Repository

	// SaveResult stores a new result. The ID is derived from the result's
	// SourceID and Language, which makes the (source, language) pair unique:
	// saving a pair that already exists returns ErrDuplicateKey and leaves
	// the stored result untouched. CreatedAt and UpdatedAt are populated.
	SaveResult(ctx context.Context, result *core.Result) (*core.Result, error)

	// GetResult retrieves the cached result for a (source, language) pair.
	// Returns ErrNotFound if no result exists.
	GetResult(ctx context.Context, sourceID, language string) (*core.Result, error)

	// GetResultByID retrieves a result by its ID.
	// Returns ErrNotFound if the result doesn't exist.
	GetResultByID(ctx context.Context, id core.ID) (*core.Result, error)

	// UpdateResult replaces an existing result, refreshing UpdatedAt.
	// Returns ErrNotFound if the result doesn't exist.
	UpdateResult(ctx context.Context, result *core.Result) (*core.Result, error)

	// GetResultsByDateRange retrieves results created within a time range.
	// Returns results where start <= CreatedAt < end, ordered by creation time.
	GetResultsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Result, error)
}
