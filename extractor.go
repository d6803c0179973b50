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


package threadweave

import (
	"log/slog"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/ai/openai"
	"github.com/poiesic/threadweave/disentangle"
	"github.com/poiesic/threadweave/storage"
	"github.com/poiesic/threadweave/storage/badger"
	"github.com/poiesic/threadweave/workflow"
)

// Extractor bundles the storage backend, the AI provider, and the pipeline
// components behind one lifecycle. Create it once per process and share it;
// all parts are safe for concurrent use.
type Extractor struct {
	backend        *badger.Backend
	checkpointRepo storage.CheckpointRepository
	articleRepo    storage.ArticleRepository
	provider       ai.AIProvider
	logger         *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*extractorOptions)

type extractorOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the default AI provider configuration.
func WithAIConfig(config *ai.Config) ExtractorOption {
	return func(o *extractorOptions) {
		o.aiConfig = config
	}
}

// NewExtractor opens the store at filePath and connects the AI provider.
func NewExtractor(filePath string, opts ...ExtractorOption) (*Extractor, error) {
	options := &extractorOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)
	articleRepo := badger.NewArticleRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Extractor{
		backend:        backend,
		checkpointRepo: checkpointRepo,
		articleRepo:    articleRepo,
		provider:       provider,
		logger:         slog.Default(),
	}, nil
}

func (e *Extractor) Close() error {
	// Close AI provider first
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.checkpointRepo.Close(); err != nil {
		e.logger.Error("error closing checkpoint repository", "err", err)
		return err
	}
	if err := e.articleRepo.Close(); err != nil {
		e.logger.Error("error closing article repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Extractor) CheckpointRepository() storage.CheckpointRepository {
	return e.checkpointRepo
}

func (e *Extractor) ArticleRepository() storage.ArticleRepository {
	return e.articleRepo
}

// NewEngine creates a disentanglement engine backed by the provider's
// embedder.
func (e *Extractor) NewEngine(opts ...disentangle.EngineOption) *disentangle.Engine {
	return disentangle.NewEngine(e.provider.Embedder(), e.logger, opts...)
}

// NewOrchestrator wires a batch orchestrator over the extractor's storage
// and provider.
func (e *Extractor) NewOrchestrator(engineOpts []disentangle.EngineOption, runnerOpts []workflow.RunnerOption, opts ...workflow.OrchestratorOption) *workflow.Orchestrator {
	runner := workflow.NewRunner(e.provider, e.checkpointRepo, e.articleRepo, e.logger, runnerOpts...)
	return workflow.NewOrchestrator(e.NewEngine(engineOpts...), runner, e.logger, opts...)
}
