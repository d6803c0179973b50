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
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/disentangle"
)

const defaultPoolSize = 4

// ThreadFailure records one thread whose workflow failed with an
// infrastructure error. Failures are isolated: they never halt the other
// threads in the batch.
type ThreadFailure struct {
	ThreadID core.ID
	Err      error
}

// BatchResult summarizes one processed channel batch.
type BatchResult struct {
	BatchID   uuid.UUID
	ChannelID string
	Threads   int
	Results   []*Result
	Failures  []ThreadFailure
}

// Count returns the number of results with the given outcome.
func (b *BatchResult) Count(outcome core.Outcome) int {
	count := 0
	for _, r := range b.Results {
		if r.Outcome == outcome {
			count++
		}
	}
	return count
}

// Orchestrator runs one clustering pass per batch, then fans the resulting
// threads out to workflow instances on a bounded worker pool.
type Orchestrator struct {
	engine   *disentangle.Engine
	runner   *Runner
	poolSize int
	logger   *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithPoolSize bounds the number of concurrent workflow instances.
func WithPoolSize(size int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.poolSize = size
	}
}

// NewOrchestrator creates a batch orchestrator.
func NewOrchestrator(engine *disentangle.Engine, runner *Runner, logger *slog.Logger, opts ...OrchestratorOption) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	orchestrator := &Orchestrator{
		engine:   engine,
		runner:   runner,
		poolSize: defaultPoolSize,
		logger:   logger.With("component", "orchestrator"),
	}

	for _, opt := range opts {
		opt(orchestrator)
	}

	return orchestrator
}

// ProcessBatch clusters one channel's message batch and runs a workflow
// instance per thread. Instances already submitted run to completion even
// if ctx is canceled mid-batch, so no partially processed thread is left
// behind; cancellation only stops provider calls inside the instances.
func (o *Orchestrator) ProcessBatch(ctx context.Context, channelID string, messages []core.Message) (*BatchResult, error) {
	batchID := uuid.New()
	logger := o.logger.With("batch_id", batchID, "channel_id", channelID)

	threads, err := o.engine.Cluster(ctx, channelID, messages)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	result := &BatchResult{
		BatchID:   batchID,
		ChannelID: channelID,
		Threads:   len(threads),
	}
	if len(threads) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, thread := range threads {
		thread := thread
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			threadResult, runErr := o.runner.Run(ctx, thread)

			mu.Lock()
			defer mu.Unlock()
			if runErr != nil {
				logger.Error("thread workflow failed", "thread_id", thread.Id, "error", runErr)
				result.Failures = append(result.Failures, ThreadFailure{ThreadID: thread.Id, Err: runErr})
				return
			}
			result.Results = append(result.Results, threadResult)
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			result.Failures = append(result.Failures, ThreadFailure{ThreadID: thread.Id, Err: err})
			mu.Unlock()
		}
	}

	wg.Wait()

	logger.Info("batch complete",
		"threads", result.Threads,
		"published", result.Count(core.OutcomePublished),
		"noise", result.Count(core.OutcomeNoise),
		"incomplete", result.Count(core.OutcomeIncomplete),
		"rejected", result.Count(core.OutcomeRejected),
		"failures", len(result.Failures))

	return result, nil
}
