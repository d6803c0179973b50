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


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/storage"
)

// CheckpointRepository implements storage.CheckpointRepository for BadgerDB.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a new CheckpointRepository.
func NewCheckpointRepository(backend *Backend) storage.CheckpointRepository {
	return &CheckpointRepository{
		backend: backend,
	}
}

// SaveCheckpoint writes a checkpoint with optimistic concurrency. The read
// and the conditional write happen in one transaction; a stale
// expectedVersion is rejected with storage.ErrCheckpointConflict.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint, expectedVersion uint64) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCheckpointKey(checkpoint.ThreadID)

		var storedVersion uint64
		item, err := tx.Get(key)
		switch err {
		case nil:
			var stored *core.Checkpoint
			if err := item.Value(func(val []byte) error {
				var unmarshalErr error
				stored, unmarshalErr = storage.UnmarshalCheckpoint(val)
				return unmarshalErr
			}); err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			storedVersion = stored.Version
		case badger.ErrKeyNotFound:
			storedVersion = 0
		default:
			return err
		}

		if storedVersion != expectedVersion {
			return fmt.Errorf("%w: thread %d expected version %d, found %d",
				storage.ErrCheckpointConflict, checkpoint.ThreadID, expectedVersion, storedVersion)
		}

		checkpoint.Version = expectedVersion + 1
		checkpoint.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalCheckpoint(checkpoint)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint retrieves the checkpoint for a thread.
// Returns storage.ErrNotFound if none exists.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, threadID core.ID) (*core.Checkpoint, error) {
	var checkpoint *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(threadID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: checkpoint for thread %d", storage.ErrNotFound, threadID)
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = storage.UnmarshalCheckpoint(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return checkpoint, nil
}

// DeleteCheckpoint removes a thread's checkpoint. Missing checkpoints are
// ignored so terminal outcomes can delete unconditionally.
func (r *CheckpointRepository) DeleteCheckpoint(ctx context.Context, threadID core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeCheckpointKey(threadID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListCheckpoints returns all suspended checkpoints in ascending thread ID
// order.
func (r *CheckpointRepository) ListCheckpoints(ctx context.Context) ([]*core.Checkpoint, error) {
	var checkpoints []*core.Checkpoint

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(checkpointPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				checkpoint, unmarshalErr := storage.UnmarshalCheckpoint(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				checkpoints = append(checkpoints, checkpoint)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return checkpoints, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *CheckpointRepository) Close() error {
	return nil
}
