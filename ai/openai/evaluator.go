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


package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
	"github.com/tmc/langchaingo/llms"
)

// Evaluator implements ai.ThreadEvaluator using OpenAI-compatible chat APIs.
// It returns the model's raw response; the workflow's evaluator stage owns
// parsing so that malformed output can fail closed to a checkpoint instead
// of an error.
type Evaluator struct {
	client llms.Model
	logger *slog.Logger
}

func newEvaluator(client llms.Model) *Evaluator {
	return &Evaluator{
		client: client,
		logger: slog.Default().With("component", "openai-evaluator"),
	}
}

// NewEvaluator creates a new thread evaluator using the provided configuration.
//
// Returns ai.ThreadEvaluator interface to enforce abstraction.
func NewEvaluator(config *ai.Config) (ai.ThreadEvaluator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	return newEvaluator(client), nil
}

// Evaluate returns the model's free-text resolution assessment of a thread.
func (e *Evaluator) Evaluate(ctx context.Context, transcript string, category core.Category) (string, error) {
	prompt := fmt.Sprintf("Evaluate this %s thread:\n\n%s", category, transcript)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(evaluatorSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(300))
	if err != nil {
		e.logger.Error("evaluation call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", errors.New("evaluator returned no choices")
	}

	return response.Choices[0].Content, nil
}
