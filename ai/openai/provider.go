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
	"log/slog"

	"github.com/poiesic/threadweave/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// The chat client is created once and shared by the classifier, evaluator
// and compiler; the provider is the process-wide handle for all model
// services.
type Provider struct {
	config     *ai.Config
	embedder   *Embedder
	classifier *Classifier
	evaluator  *Evaluator
	compiler   *Compiler
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	chatClient, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		embedder:   embedder,
		classifier: newClassifier(chatClient),
		evaluator:  newEvaluator(chatClient),
		compiler:   newCompiler(chatClient),
		logger:     slog.Default().With("component", "openai-provider"),
	}, nil
}

// newChatClient creates an OpenAI-compatible chat client.
// Use "none" as token for local OpenAI-compatible services that don't
// require authentication.
func newChatClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Classifier returns the thread classification service.
func (p *Provider) Classifier() ai.ThreadClassifier {
	return p.classifier
}

// Evaluator returns the thread evaluation service.
func (p *Provider) Evaluator() ai.ThreadEvaluator {
	return p.evaluator
}

// Compiler returns the article compilation service.
func (p *Provider) Compiler() ai.ArticleCompiler {
	return p.compiler
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
