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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/storage"
)

func newTestCheckpointRepo(t *testing.T) storage.CheckpointRepository {
	t.Helper()
	checkpointRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		checkpointRepo.Close()
		backend.Close()
	})
	return checkpointRepo
}

func suspendedCheckpoint(threadID core.ID) *core.Checkpoint {
	return &core.Checkpoint{
		ThreadID: threadID,
		State: core.WorkflowState{
			ThreadID: threadID,
			Stage:    core.StageEvaluate,
			Category: core.CategoryTroubleshooting,
			Evaluation: &core.EvaluationResult{
				HasSolution: false,
				IsResolved:  false,
				Reasoning:   "no answer yet",
			},
		},
	}
}

func TestCheckpointRepository_SaveAndLoad(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	checkpoint := suspendedCheckpoint(1)
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint, 0))
	assert.Equal(t, uint64(1), checkpoint.Version)
	assert.False(t, checkpoint.UpdatedAt.IsZero())

	loaded, err := repo.LoadCheckpoint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, checkpoint.ThreadID, loaded.ThreadID)
	assert.Equal(t, uint64(1), loaded.Version)
	assert.Equal(t, core.StageEvaluate, loaded.State.Stage)
	require.NotNil(t, loaded.State.Evaluation)
	assert.Equal(t, "no answer yet", loaded.State.Evaluation.Reasoning)
}

func TestCheckpointRepository_LoadMissing(t *testing.T) {
	repo := newTestCheckpointRepo(t)

	_, err := repo.LoadCheckpoint(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCheckpointRepository_VersionIncrements(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	checkpoint := suspendedCheckpoint(2)
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint, 0))
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint, 1))
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint, 2))
	assert.Equal(t, uint64(3), checkpoint.Version)
}

func TestCheckpointRepository_StaleWriterRejected(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	// Writer A and writer B both load version 0 state.
	a := suspendedCheckpoint(3)
	b := suspendedCheckpoint(3)

	require.NoError(t, repo.SaveCheckpoint(ctx, a, 0))

	err := repo.SaveCheckpoint(ctx, b, 0)
	assert.ErrorIs(t, err, storage.ErrCheckpointConflict)

	// The stored checkpoint keeps writer A's version.
	loaded, err := repo.LoadCheckpoint(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), loaded.Version)
}

func TestCheckpointRepository_SaveOverMissingWithNonzeroVersion(t *testing.T) {
	repo := newTestCheckpointRepo(t)

	checkpoint := suspendedCheckpoint(4)
	err := repo.SaveCheckpoint(context.Background(), checkpoint, 5)
	assert.ErrorIs(t, err, storage.ErrCheckpointConflict)
}

func TestCheckpointRepository_Delete(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	checkpoint := suspendedCheckpoint(5)
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint, 0))
	require.NoError(t, repo.DeleteCheckpoint(ctx, 5))

	_, err := repo.LoadCheckpoint(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, repo.DeleteCheckpoint(ctx, 5))
}

func TestCheckpointRepository_ListOrdered(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	for _, id := range []core.ID{30, 10, 20} {
		require.NoError(t, repo.SaveCheckpoint(ctx, suspendedCheckpoint(id), 0))
	}

	checkpoints, err := repo.ListCheckpoints(ctx)
	require.NoError(t, err)
	require.Len(t, checkpoints, 3)
	assert.Equal(t, core.ID(10), checkpoints[0].ThreadID)
	assert.Equal(t, core.ID(20), checkpoints[1].ThreadID)
	assert.Equal(t, core.ID(30), checkpoints[2].ThreadID)
}
