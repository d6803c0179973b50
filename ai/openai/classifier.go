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
	"log/slog"
	"strings"

	"github.com/poiesic/threadweave/ai"
	"github.com/tmc/langchaingo/llms"
)

// Classifier implements ai.ThreadClassifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

func newClassifier(client llms.Model) *Classifier {
	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}
}

// NewClassifier creates a new thread classifier using the provided configuration.
//
// Returns ai.ThreadClassifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.ThreadClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	return newClassifier(client), nil
}

// Classify returns the raw category label for a thread transcript.
// Provider and transport failures are returned as errors; the label is not
// normalized here.
func (c *Classifier) Classify(ctx context.Context, transcript string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(classifierSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("Classify this thread:\n\n" + transcript)},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(100))
	if err != nil {
		c.logger.Error("classification call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", errors.New("classifier returned no choices")
	}

	label := strings.ToLower(strings.TrimSpace(response.Choices[0].Content))
	c.logger.Debug("classified thread", "label", label)
	return label, nil
}
