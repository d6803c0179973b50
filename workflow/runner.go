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
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/storage"
)

const defaultRequestTimeout = 60 * time.Second

// Result is the terminal outcome of one workflow instance.
type Result struct {
	ThreadID   core.ID
	ChannelID  string
	Outcome    core.Outcome
	Category   core.Category
	Score      float64
	RetryCount int
	Resumed    bool
}

// Runner executes the extraction state machine for one thread at a time.
// A single Runner is shared by all workflow instances in a batch; it keeps
// no per-thread state.
type Runner struct {
	router      *Router
	evaluator   *Evaluator
	compiler    *Compiler
	checkpoints storage.CheckpointRepository
	sink        storage.ArticleRepository
	maxRetries  int
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	requestTimeout time.Duration
	maxRetries     int
}

// WithRequestTimeout overrides the per-provider-call timeout.
func WithRequestTimeout(timeout time.Duration) RunnerOption {
	return func(c *runnerConfig) {
		c.requestTimeout = timeout
	}
}

// WithMaxRetries overrides the gate→compile retry bound.
func WithMaxRetries(n int) RunnerOption {
	return func(c *runnerConfig) {
		c.maxRetries = n
	}
}

// NewRunner wires the workflow stages around an AI provider, a checkpoint
// store, and the downstream article sink.
func NewRunner(provider ai.AIProvider, checkpoints storage.CheckpointRepository, sink storage.ArticleRepository, logger *slog.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	config := &runnerConfig{
		requestTimeout: defaultRequestTimeout,
		maxRetries:     MaxCompileRetries,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Runner{
		router:      NewRouter(provider.Classifier(), config.requestTimeout, logger),
		evaluator:   NewEvaluator(provider.Evaluator(), config.requestTimeout, logger),
		compiler:    NewCompiler(provider.Compiler(), config.requestTimeout, logger),
		checkpoints: checkpoints,
		sink:        sink,
		maxRetries:  config.maxRetries,
		logger:      logger.With("component", "runner"),
	}
}

// Transcript renders a thread as the chronological text the providers see.
func Transcript(thread *core.Thread) string {
	var b strings.Builder
	for i, msg := range thread.Messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('[')
		b.WriteString(msg.AuthorHash)
		b.WriteString("] ")
		b.WriteString(msg.Content)
	}
	return b.String()
}

// Run drives one thread to a terminal outcome. A checkpoint for the
// thread's identity makes the instance resume at EVALUATE with the saved
// state; otherwise it starts at ROUTE. Stages execute strictly
// sequentially.
func (r *Runner) Run(ctx context.Context, thread *core.Thread) (*Result, error) {
	transcript := Transcript(thread)

	state, expectedVersion, resumed, err := r.loadState(ctx, thread)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With("thread_id", thread.Id, "channel_id", thread.ChannelID)
	if resumed {
		logger.Info("resuming suspended thread", "version", expectedVersion)
	}

	result := &Result{
		ThreadID:  thread.Id,
		ChannelID: thread.ChannelID,
		Resumed:   resumed,
	}

	for {
		switch state.Stage {
		case core.StageRoute:
			category, err := r.router.Route(ctx, transcript)
			if err != nil {
				return nil, err
			}
			state.Category = category
			result.Category = category

			if category == core.CategoryNoise {
				logger.Info("thread routed as noise")
				result.Outcome = core.OutcomeNoise
				return result, nil
			}
			state.Stage = core.StageEvaluate

		case core.StageEvaluate:
			result.Category = state.Category
			eval, err := r.evaluator.Evaluate(ctx, transcript, state.Category)
			if err != nil {
				if errors.Is(err, ErrUnparsableEvaluation) {
					// Fail closed: keep the thread recoverable.
					state.LastError = err.Error()
					return r.suspend(ctx, logger, state, expectedVersion, result)
				}
				return nil, err
			}
			state.Evaluation = eval
			state.LastError = ""

			if !ResolvedForCategory(state.Category, eval) {
				logger.Info("thread not yet resolved", "reasoning", eval.Reasoning)
				return r.suspend(ctx, logger, state, expectedVersion, result)
			}
			state.Stage = core.StageCompile

		case core.StageCompile:
			article, err := r.compiler.Compile(ctx, transcript, state.Category, *state.Evaluation)
			if err != nil {
				return nil, err
			}
			state.Article = article
			state.Stage = core.StageGate

		case core.StageGate:
			state.Score = QualityScore(state.Article)
			result.Score = state.Score

			if state.Score < QualityThreshold {
				state.RetryCount++
			}
			result.RetryCount = state.RetryCount

			switch Decide(state.Score, state.RetryCount) {
			case DecisionPass:
				if err := r.publish(ctx, thread, state); err != nil {
					return nil, err
				}
				logger.Info("article published", "score", state.Score, "retries", state.RetryCount)
				result.Outcome = core.OutcomePublished
				return result, nil

			case DecisionRetry:
				logger.Info("draft below threshold, recompiling",
					"score", state.Score, "retry", state.RetryCount)
				state.Stage = core.StageCompile

			case DecisionReject:
				// Nothing is emitted downstream; the outcome itself is the
				// rejection record.
				if err := r.checkpoints.DeleteCheckpoint(ctx, thread.Id); err != nil {
					return nil, err
				}
				logger.Info("thread rejected by quality gate",
					"score", state.Score, "retries", state.RetryCount)
				result.Outcome = core.OutcomeRejected
				return result, nil
			}

		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownStage, state.Stage)
		}
	}
}

// loadState fetches a checkpoint for the thread if one exists. A hit
// re-enters the state machine at EVALUATE with the saved state; the
// returned version guards the next checkpoint write.
func (r *Runner) loadState(ctx context.Context, thread *core.Thread) (*core.WorkflowState, uint64, bool, error) {
	checkpoint, err := r.checkpoints.LoadCheckpoint(ctx, thread.Id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			state := &core.WorkflowState{
				ThreadID: thread.Id,
				Stage:    core.StageRoute,
			}
			return state, 0, false, nil
		}
		return nil, 0, false, err
	}

	state := checkpoint.State
	state.Stage = core.StageEvaluate
	return &state, checkpoint.Version, true, nil
}

// suspend persists the state as an INCOMPLETE checkpoint. A version
// conflict means another instance resumed the same identity concurrently;
// the error propagates so the caller can back off.
func (r *Runner) suspend(ctx context.Context, logger *slog.Logger, state *core.WorkflowState, expectedVersion uint64, result *Result) (*Result, error) {
	checkpoint := &core.Checkpoint{
		ThreadID: state.ThreadID,
		State:    *state,
	}
	if err := r.checkpoints.SaveCheckpoint(ctx, checkpoint, expectedVersion); err != nil {
		return nil, err
	}

	logger.Info("thread suspended", "version", checkpoint.Version)
	result.Outcome = core.OutcomeIncomplete
	return result, nil
}

// publish emits the passed article to the sink, then clears the thread's
// checkpoint. Ordering matters: deleting first could lose the thread if
// the sink write fails.
func (r *Runner) publish(ctx context.Context, thread *core.Thread, state *core.WorkflowState) error {
	published := &core.PublishedArticle{
		ThreadID:  thread.Id,
		ChannelID: thread.ChannelID,
		Article:   *state.Article,
		Score:     state.Score,
	}
	if err := r.sink.SaveArticle(ctx, published); err != nil {
		return &InfraError{Stage: core.StageGate, Err: err}
	}
	return r.checkpoints.DeleteCheckpoint(ctx, thread.Id)
}
