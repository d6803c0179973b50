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
	"log/slog"
	"time"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
)

// Compiler turns a resolved thread into a structured article.
type Compiler struct {
	compiler ai.ArticleCompiler
	timeout  time.Duration
	logger   *slog.Logger
}

// NewCompiler creates a compiler around an article compilation service.
func NewCompiler(compiler ai.ArticleCompiler, timeout time.Duration, logger *slog.Logger) *Compiler {
	return &Compiler{
		compiler: compiler,
		timeout:  timeout,
		logger:   logger.With("component", "compiler"),
	}
}

// Compile produces an article draft for the thread. Schema validation
// failure is not a hard failure: the draft is degraded to confidence 0 so
// the quality gate rejects or retries it naturally. Provider failure after
// transport retries is an InfraError.
func (c *Compiler) Compile(ctx context.Context, transcript string, category core.Category, eval core.EvaluationResult) (*core.CompiledArticle, error) {
	var article *core.CompiledArticle
	var invalid error

	err := RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var callErr error
		article, callErr = c.compiler.Compile(callCtx, transcript, category, eval)
		if callErr != nil && errors.Is(callErr, core.ErrInvalidArticle) {
			// Schema failure, not a transport failure. Keep the partial
			// article and stop retrying at this layer.
			invalid = callErr
			return nil
		}
		return callErr
	}, transportMaxAttempts, transportBaseDelay)
	if err != nil {
		return nil, &InfraError{Stage: core.StageCompile, Err: err}
	}

	if invalid != nil {
		c.logger.Warn("compiler output failed schema validation, degrading draft", "error", invalid)
		article = degradedDraft(article, category)
	}

	return article, nil
}

// degradedDraft zeroes the confidence of an invalid draft so the gate
// scores it down, preserving whatever fields the model did produce.
func degradedDraft(partial *core.CompiledArticle, category core.Category) *core.CompiledArticle {
	if partial == nil {
		partial = &core.CompiledArticle{ArticleType: category}
	}
	partial.Confidence = 0
	if partial.ArticleType == core.CategoryUnknown {
		partial.ArticleType = category
	}
	return partial
}
