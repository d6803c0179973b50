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


// Package ai provides abstractions for the AI services used by the
// extraction pipeline.
//
// The pipeline consumes two black-box model services: an embedding model
// (thread disentanglement) and a chat model (classification, evaluation,
// article compilation). This package defines the interfaces; the domain
// packages depend on these abstractions rather than concrete clients.
//
// # Interfaces
//
//   - Embedder: generates vector embeddings from text
//   - ThreadClassifier: labels a thread transcript with one category
//   - ThreadEvaluator: assesses resolution, returning the raw model text
//   - ArticleCompiler: produces a schema-validated CompiledArticle
//   - AIProvider: aggregates the services with a shared lifecycle
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Lifecycle
//
// A provider is constructed once per process and shared across workflow
// instances; all services are safe for concurrent use. Close releases the
// underlying clients.
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	label, err := provider.Classifier().Classify(ctx, transcript)
//
// Production constructors (openai.NewProvider) return interface types to
// enforce abstraction. Mock constructors return concrete types so tests can
// inject behavior and assert call counts.
package ai
