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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
)

// Evaluator assesses whether a thread reached resolution.
type Evaluator struct {
	evaluator ai.ThreadEvaluator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewEvaluator creates an evaluator around a thread evaluation service.
func NewEvaluator(evaluator ai.ThreadEvaluator, timeout time.Duration, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		evaluator: evaluator,
		timeout:   timeout,
		logger:    logger.With("component", "evaluator"),
	}
}

// evaluationJSON mirrors the assessment shape requested in the evaluator
// prompt.
type evaluationJSON struct {
	HasSolution bool   `json:"has_solution"`
	HasCode     bool   `json:"has_code"`
	IsResolved  bool   `json:"is_resolved"`
	Reasoning   string `json:"reasoning"`
}

// Evaluate runs the evaluation call and parses the model's free-text
// response. A malformed response returns ErrUnparsableEvaluation so the
// runner can fail closed to an INCOMPLETE checkpoint instead of crashing;
// provider failure after transport retries is an InfraError.
func (e *Evaluator) Evaluate(ctx context.Context, transcript string, category core.Category) (*core.EvaluationResult, error) {
	var raw string
	err := RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		var callErr error
		raw, callErr = e.evaluator.Evaluate(callCtx, transcript, category)
		return callErr
	}, transportMaxAttempts, transportBaseDelay)
	if err != nil {
		return nil, &InfraError{Stage: core.StageEvaluate, Err: err}
	}

	parsed, err := parseEvaluation(raw)
	if err != nil {
		e.logger.Warn("evaluator response not parsable", "error", err)
		return nil, err
	}

	return &core.EvaluationResult{
		HasSolution: parsed.HasSolution,
		HasCode:     parsed.HasCode,
		IsResolved:  parsed.IsResolved,
		Reasoning:   parsed.Reasoning,
	}, nil
}

// parseEvaluation extracts the JSON assessment from a free-text response.
// Models wrap JSON in markdown fences or surround it with prose; both are
// tolerated by cutting from the first '{' to the last '}'.
func parseEvaluation(raw string) (evaluationJSON, error) {
	var parsed evaluationJSON

	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return parsed, fmt.Errorf("%w: no JSON object in %q", ErrUnparsableEvaluation, truncate(raw, 120))
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return parsed, fmt.Errorf("%w: %v", ErrUnparsableEvaluation, err)
	}
	return parsed, nil
}

// ResolvedForCategory applies the category-dependent resolution policy.
// Troubleshooting and question-answer threads need a solution present;
// guides and discussion summaries have no discrete "solved" state and are
// always resolved.
func ResolvedForCategory(category core.Category, eval *core.EvaluationResult) bool {
	switch category {
	case core.CategoryTroubleshooting, core.CategoryQuestionAnswer:
		return eval.HasSolution
	case core.CategoryGuide, core.CategoryDiscussionSummary:
		return true
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
