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


package mock

import "github.com/poiesic/threadweave/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, classifier, evaluator and compiler instances.
type MockProvider struct {
	embedder   *MockEmbedder
	classifier *MockClassifier
	evaluator  *MockEvaluator
	compiler   *MockCompiler
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production
// constructors. Use the GetMock* methods to access concrete types for test
// assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		classifier: NewMockClassifier(),
		evaluator:  NewMockEvaluator(),
		compiler:   NewMockCompiler(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Classifier returns the mock classifier.
func (p *MockProvider) Classifier() ai.ThreadClassifier {
	return p.classifier
}

// Evaluator returns the mock evaluator.
func (p *MockProvider) Evaluator() ai.ThreadEvaluator {
	return p.evaluator
}

// Compiler returns the mock compiler.
func (p *MockProvider) Compiler() ai.ArticleCompiler {
	return p.compiler
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockClassifier returns the underlying mock classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockClassifier {
	return p.classifier
}

// GetMockEvaluator returns the underlying mock evaluator for test assertions.
func (p *MockProvider) GetMockEvaluator() *MockEvaluator {
	return p.evaluator
}

// GetMockCompiler returns the underlying mock compiler for test assertions.
func (p *MockProvider) GetMockCompiler() *MockCompiler {
	return p.compiler
}
