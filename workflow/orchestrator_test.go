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


package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/threadweave/ai/mock"
	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/disentangle"
	badgerstore "github.com/poiesic/threadweave/storage/badger"
)

type orchestratorFixture struct {
	orchestrator *Orchestrator
	provider     *mock.MockProvider
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	checkpoints, articles, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		checkpoints.Close()
		articles.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	runner := NewRunner(provider, checkpoints, articles, nil,
		WithRequestTimeout(5*time.Second))
	engine := disentangle.NewEngine(provider.Embedder(), nil)
	orchestrator := NewOrchestrator(engine, runner, nil, WithPoolSize(2))

	return &orchestratorFixture{
		orchestrator: orchestrator,
		provider:     provider,
	}
}

// batchMessage builds one message. Batches in these tests keep threads
// apart with >4h gaps so clustering does not depend on mock embeddings.
func batchMessage(id, author, content string, offset time.Duration) core.Message {
	return core.Message{
		ID:         id,
		AuthorHash: author,
		Content:    content,
		Timestamp:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(offset),
	}
}

func TestProcessBatch_Empty(t *testing.T) {
	f := newOrchestratorFixture(t)

	result, err := f.orchestrator.ProcessBatch(context.Background(), "chan-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Threads)
	assert.Empty(t, result.Results)
	assert.NotEqual(t, uuid.Nil, result.BatchID)
}

func TestProcessBatch_PublishesPerThread(t *testing.T) {
	f := newOrchestratorFixture(t)

	reply := batchMessage("m2", "bob", "try raising the file descriptor limit", 10*time.Minute)
	reply.ReplyTo = "m1"

	messages := []core.Message{
		batchMessage("m1", "alice", "server hits too many open files", 0),
		reply,
		batchMessage("m3", "carol", "separate conversation much later", 10*time.Hour),
	}

	result, err := f.orchestrator.ProcessBatch(context.Background(), "chan-1", messages)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Threads)
	assert.Len(t, result.Results, 2)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 2, result.Count(core.OutcomePublished))
}

func TestProcessBatch_FailuresAreIsolated(t *testing.T) {
	f := newOrchestratorFixture(t)

	// The classifier fails only for the poisoned thread.
	f.provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, transcript string) (string, error) {
		if strings.Contains(transcript, "poison") {
			return "", assert.AnError
		}
		return "troubleshooting", nil
	}

	messages := []core.Message{
		batchMessage("m1", "alice", "poison thread content", 0),
		batchMessage("m2", "bob", "healthy thread content", 10*time.Hour),
	}

	result, err := f.orchestrator.ProcessBatch(context.Background(), "chan-1", messages)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Threads)
	require.Len(t, result.Failures, 1)
	require.Len(t, result.Results, 1)
	assert.Equal(t, core.OutcomePublished, result.Results[0].Outcome)

	var infraErr *InfraError
	assert.ErrorAs(t, result.Failures[0].Err, &infraErr)
}

func TestProcessBatch_MixedOutcomes(t *testing.T) {
	f := newOrchestratorFixture(t)

	f.provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, transcript string) (string, error) {
		if strings.Contains(transcript, "lol") {
			return "noise", nil
		}
		return "troubleshooting", nil
	}
	f.provider.GetMockEvaluator().EvaluateFunc = func(ctx context.Context, transcript string, category core.Category) (string, error) {
		if strings.Contains(transcript, "unanswered") {
			return `{"has_solution": false, "is_resolved": false, "reasoning": "open"}`, nil
		}
		return `{"has_solution": true, "has_code": true, "is_resolved": true, "reasoning": "solved"}`, nil
	}

	messages := []core.Message{
		batchMessage("m1", "alice", "lol nothing to see", 0),
		batchMessage("m2", "bob", "unanswered question about sharding", 10*time.Hour),
		batchMessage("m3", "carol", "solved crash with a stack trace", 20*time.Hour),
	}

	result, err := f.orchestrator.ProcessBatch(context.Background(), "chan-1", messages)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Threads)
	assert.Equal(t, 1, result.Count(core.OutcomeNoise))
	assert.Equal(t, 1, result.Count(core.OutcomeIncomplete))
	assert.Equal(t, 1, result.Count(core.OutcomePublished))
}
