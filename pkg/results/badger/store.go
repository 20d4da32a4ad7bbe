// Package badger implements a persistent result store on BadgerDB.
package badger

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/google/uuid"
	"github.com/marmos91/elfdevice/pkg/results"
)

// BadgerResultStore records answers in a BadgerDB database.
//
// Thread Safety:
// Every operation runs inside a badger transaction; the store is safe for
// concurrent use. Conflicting concurrent Record calls on the same run are
// retried once before the conflict is returned.
type BadgerResultStore struct {
	db *badger.DB
}

// BadgerResultStoreConfig contains configuration for the badger result store.
type BadgerResultStoreConfig struct {
	// DBPath is the database directory. Ignored when InMemory is set.
	DBPath string `mapstructure:"db_path"`

	// InMemory keeps the database in memory only.
	InMemory bool `mapstructure:"in_memory"`

	// BadgerOptions overrides every other option when non-nil.
	BadgerOptions *badger.Options

	// BlockCacheSizeMB defaults to 16.
	BlockCacheSizeMB int64 `mapstructure:"block_cache_mb"`

	// IndexCacheSizeMB defaults to 8.
	IndexCacheSizeMB int64 `mapstructure:"index_cache_mb"`
}

// NewBadgerResultStore opens (or creates) the database.
//
// Parameters:
//   - ctx: Context for cancellation
//   - config: Store configuration
//
// Returns:
//   - *BadgerResultStore: Open store; call Close when done
//   - error: If the context is cancelled or badger fails to open
func NewBadgerResultStore(ctx context.Context, config BadgerResultStoreConfig) (*BadgerResultStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts badger.Options
	if config.BadgerOptions != nil {
		opts = *config.BadgerOptions
	} else {
		if config.InMemory {
			opts = badger.DefaultOptions("").WithInMemory(true)
		} else {
			if config.DBPath == "" {
				return nil, fmt.Errorf("badger result store requires db_path")
			}
			opts = badger.DefaultOptions(config.DBPath)
		}

		opts = opts.WithLoggingLevel(badger.WARNING)
		opts = opts.WithCompression(options.None)

		blockCacheMB := config.BlockCacheSizeMB
		if blockCacheMB == 0 {
			blockCacheMB = 16
		}
		indexCacheMB := config.IndexCacheSizeMB
		if indexCacheMB == 0 {
			indexCacheMB = 8
		}

		opts = opts.WithBlockCacheSize(blockCacheMB << 20)
		opts = opts.WithIndexCacheSize(indexCacheMB << 20)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %s: %w", config.DBPath, err)
	}

	return &BadgerResultStore{db: db}, nil
}

// Record stores an answer and updates its run summary in one transaction.
func (s *BadgerResultStore) Record(ctx context.Context, answer results.Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := answer.Validate(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return recordTxn(txn, &answer)
	})
	if errors.Is(err, badger.ErrConflict) {
		err = s.db.Update(func(txn *badger.Txn) error {
			return recordTxn(txn, &answer)
		})
	}
	if err != nil {
		return fmt.Errorf("failed to record answer: %w", err)
	}
	return nil
}

func recordTxn(txn *badger.Txn, answer *results.Answer) error {
	answerKey := keyAnswer(answer.RunID, answer.Puzzle, answer.Part)

	_, err := txn.Get(answerKey)
	isNew := errors.Is(err, badger.ErrKeyNotFound)
	if err != nil && !isNew {
		return err
	}

	info, err := getRunInfo(txn, answer.RunID)
	if err != nil && !errors.Is(err, results.ErrRunNotFound) {
		return err
	}
	if info == nil {
		info = &results.RunInfo{ID: answer.RunID, StartedAt: answer.RecordedAt}
	}
	if isNew {
		info.Answers++
	}
	if answer.RecordedAt.Before(info.StartedAt) {
		info.StartedAt = answer.RecordedAt
	}

	answerBytes, err := encodeAnswer(answer)
	if err != nil {
		return err
	}
	infoBytes, err := encodeRunInfo(info)
	if err != nil {
		return err
	}

	if err := txn.Set(answerKey, answerBytes); err != nil {
		return err
	}
	return txn.Set(keyRun(answer.RunID), infoBytes)
}

func getRunInfo(txn *badger.Txn, id uuid.UUID) (*results.RunInfo, error) {
	item, err := txn.Get(keyRun(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("run %s: %w", id, results.ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}

	var info *results.RunInfo
	err = item.Value(func(val []byte) error {
		info, err = decodeRunInfo(val)
		return err
	})
	return info, err
}

// GetRun returns the answers of a run, ordered by puzzle then part.
func (s *BadgerResultStore) GetRun(ctx context.Context, id uuid.UUID) ([]results.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var answers []results.Answer
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getRunInfo(txn, id); err != nil {
			return err
		}

		prefix := keyAnswerPrefix(id)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				a, err := decodeAnswer(val)
				if err != nil {
					return err
				}
				answers = append(answers, *a)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Key order breaks down for puzzle names that contain ':'.
	results.SortAnswers(answers)
	return answers, nil
}

// ListRuns returns every run, oldest first.
func (s *BadgerResultStore) ListRuns(ctx context.Context) ([]results.RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var runs []results.RunInfo
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(prefixRun)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				info, err := decodeRunInfo(val)
				if err != nil {
					return err
				}
				runs = append(runs, *info)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results.SortRuns(runs)
	return runs, nil
}

// Close closes the database.
func (s *BadgerResultStore) Close() error {
	return s.db.Close()
}
