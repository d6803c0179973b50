package storage

import (
	"context"

	"github.com/poiesic/threadweave/core"
)

// CheckpointRepository persists suspended workflow state keyed by thread
// identity. Implementations must be thread-safe and support concurrent
// access.
type CheckpointRepository interface {
	// LoadCheckpoint retrieves the checkpoint for a thread.
	// Returns ErrNotFound if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, threadID core.ID) (*core.Checkpoint, error)

	// SaveCheckpoint writes a checkpoint with optimistic concurrency.
	// expectedVersion must match the stored version, or 0 when the caller
	// expects no checkpoint to exist yet. On success the stored version is
	// expectedVersion+1 and checkpoint.Version/UpdatedAt are updated in
	// place. Returns ErrCheckpointConflict on a version mismatch.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint, expectedVersion uint64) error

	// DeleteCheckpoint removes a thread's checkpoint after a terminal
	// outcome. Deleting a missing checkpoint is not an error.
	DeleteCheckpoint(ctx context.Context, threadID core.ID) error

	// ListCheckpoints returns all suspended checkpoints, ordered by thread ID.
	ListCheckpoints(ctx context.Context) ([]*core.Checkpoint, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ArticleRepository is the downstream sink for articles that passed the
// quality gate.
type ArticleRepository interface {
	// SaveArticle persists a published article. Re-publishing the same
	// thread overwrites the previous article.
	SaveArticle(ctx context.Context, article *core.PublishedArticle) error

	// GetArticle retrieves the published article for a thread.
	// Returns ErrNotFound if none exists.
	GetArticle(ctx context.Context, threadID core.ID) (*core.PublishedArticle, error)

	// ListArticles returns all published articles, ordered by thread ID.
	ListArticles(ctx context.Context) ([]*core.PublishedArticle, error)

	// Close closes the repository and releases resources.
	Close() error
}
