package badger

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recapit/core"
	"github.com/poiesic/recapit/storage"
)

// ResultRepository implements storage.ResultRepository for BadgerDB.
type ResultRepository struct {
	backend *Backend
}

var _ storage.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(backend *Backend) (*ResultRepository, error) {
	return &ResultRepository{backend: backend}, nil
}

// Close releases repository resources. Result IDs are content-derived, so
// there is no sequence to release.
func (r *ResultRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ResultRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveResult stores a new result under its (source, language) derived ID.
// Returns ErrDuplicateKey if a result for the pair already exists.
func (r *ResultRepository) SaveResult(ctx context.Context, result *core.Result) (*core.Result, error) {
	if err := core.ValidateResult(result); err != nil {
		return nil, err
	}

	result.Id = core.ResultKey(result.SourceID, result.Language)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResultKey(result.Id)

		existing, err := r.readResult(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrDuplicateKey
		}

		now := time.Now().UTC()
		if result.CreatedAt.IsZero() {
			result.CreatedAt = now
		}
		result.UpdatedAt = now

		if err := tx.Set(key, storage.MarshalResult(result)); err != nil {
			return err
		}

		dateKey := makeResultDateKey(result.CreatedAt, result.Id)
		if err := tx.Set(dateKey, storage.MarshalID(result.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetResult retrieves the cached result for a (source, language) pair.
func (r *ResultRepository) GetResult(ctx context.Context, sourceID, language string) (*core.Result, error) {
	return r.GetResultByID(ctx, core.ResultKey(sourceID, language))
}

// GetResultByID retrieves a result by its ID.
func (r *ResultRepository) GetResultByID(ctx context.Context, id core.ID) (*core.Result, error) {
	var result *core.Result

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readResult(tx, makeResultKey(id))
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, storage.ErrNotFound
	}
	return result, nil
}

// UpdateResult replaces an existing result and refreshes UpdatedAt.
func (r *ResultRepository) UpdateResult(ctx context.Context, result *core.Result) (*core.Result, error) {
	if err := core.ValidateResult(result); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResultKey(result.Id)

		old, err := r.readResult(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		// CreatedAt is immutable; it anchors the date index.
		result.CreatedAt = old.CreatedAt
		result.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalResult(result)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetResultsByDateRange retrieves results with start <= CreatedAt < end,
// ordered by creation time.
func (r *ResultRepository) GetResultsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Result, error) {
	if end.Before(start) {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Result

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(resultDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialResultDateKey(start)
		endKey := makePartialResultDateKey(end)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			item := iter.Item()
			if bytes.Compare(item.Key(), endKey) >= 0 {
				break
			}

			var id core.ID
			err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			result, err := r.readResult(tx, makeResultKey(id))
			if err != nil {
				return err
			}
			if result != nil {
				results = append(results, result)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// readResult reads and unmarshals a result by key.
// Returns (nil, nil) if the key doesn't exist.
func (r *ResultRepository) readResult(tx *badger.Txn, key []byte) (*core.Result, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var result *core.Result
	err = item.Value(func(val []byte) error {
		var err error
		result, err = storage.UnmarshalResult(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
