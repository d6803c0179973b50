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
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
)

const (
	// Transport-level retry for provider calls, distinct from the
	// business-level gate retry counter.
	transportMaxAttempts = 3
	transportBaseDelay   = 500 * time.Millisecond
)

// Router assigns a thread transcript to one category from the closed set.
type Router struct {
	classifier ai.ThreadClassifier
	timeout    time.Duration
	logger     *slog.Logger
}

// NewRouter creates a router around a classifier service.
func NewRouter(classifier ai.ThreadClassifier, timeout time.Duration, logger *slog.Logger) *Router {
	return &Router{
		classifier: classifier,
		timeout:    timeout,
		logger:     logger.With("component", "router"),
	}
}

// Route classifies the transcript. An unknown or ambiguous label defaults
// to troubleshooting, the most substantive category: the quality gate
// recovers false positives cheaply, while a wrong NOISE silently discards
// real content. Provider failure after transport retries is an InfraError,
// never NOISE.
func (r *Router) Route(ctx context.Context, transcript string) (core.Category, error) {
	var label string
	err := RetryWithBackoff(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		var callErr error
		label, callErr = r.classifier.Classify(callCtx, transcript)
		return callErr
	}, transportMaxAttempts, transportBaseDelay)
	if err != nil {
		return core.CategoryUnknown, &InfraError{Stage: core.StageRoute, Err: err}
	}

	category := core.ParseCategory(strings.ToLower(strings.TrimSpace(label)))
	if category == core.CategoryUnknown {
		r.logger.Warn("unrecognized category label, defaulting to troubleshooting", "label", label)
		category = core.CategoryTroubleshooting
	}

	return category, nil
}
