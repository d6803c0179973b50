package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/threadweave/core"
)

// MockClassifier is a test double for ai.ThreadClassifier.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, every transcript is labeled "troubleshooting".
	ClassifyFunc func(ctx context.Context, transcript string) (string, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify labels the transcript.
func (m *MockClassifier) Classify(ctx context.Context, transcript string) (string, error) {
	m.callCount++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, transcript)
	}
	return core.CategoryTroubleshooting.String(), nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}

// MockEvaluator is a test double for ai.ThreadEvaluator.
type MockEvaluator struct {
	// EvaluateFunc is called by Evaluate if set.
	// If nil, returns a well-formed resolved assessment.
	EvaluateFunc func(ctx context.Context, transcript string, category core.Category) (string, error)

	callCount int
}

// NewMockEvaluator creates a mock evaluator with default behavior.
func NewMockEvaluator() *MockEvaluator {
	return &MockEvaluator{}
}

// Evaluate returns a raw assessment for the transcript.
func (m *MockEvaluator) Evaluate(ctx context.Context, transcript string, category core.Category) (string, error) {
	m.callCount++
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, transcript, category)
	}
	return `{"has_solution": true, "has_code": true, "is_resolved": true, "reasoning": "mock assessment"}`, nil
}

// CallCount returns the number of times Evaluate was called.
func (m *MockEvaluator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockEvaluator) Reset() {
	m.callCount = 0
	m.EvaluateFunc = nil
}

// MockCompiler is a test double for ai.ArticleCompiler.
type MockCompiler struct {
	// CompileFunc is called by Compile if set.
	// If nil, returns a high-quality article for the requested category.
	CompileFunc func(ctx context.Context, transcript string, category core.Category, eval core.EvaluationResult) (*core.CompiledArticle, error)

	callCount int
}

// NewMockCompiler creates a mock compiler with default behavior.
func NewMockCompiler() *MockCompiler {
	return &MockCompiler{}
}

// Compile returns a structured article for the transcript.
func (m *MockCompiler) Compile(ctx context.Context, transcript string, category core.Category, eval core.EvaluationResult) (*core.CompiledArticle, error) {
	m.callCount++
	if m.CompileFunc != nil {
		return m.CompileFunc(ctx, transcript, category, eval)
	}
	return DefaultArticle(category), nil
}

// CallCount returns the number of times Compile was called.
func (m *MockCompiler) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockCompiler) Reset() {
	m.callCount = 0
	m.CompileFunc = nil
}

// DefaultArticle builds an article that comfortably passes the quality gate
// for the given category. Tests that need failing drafts inject their own
// CompileFunc.
func DefaultArticle(category core.Category) *core.CompiledArticle {
	article := &core.CompiledArticle{
		Symptom:   "mock symptom describing the observed failure in enough detail to be searchable",
		Diagnosis: fmt.Sprintf("mock diagnosis of the root cause behind the %s thread, with mechanism", category),
		Solution: "1. Reproduce the failure locally.\n" +
			"2. Apply the configuration change discussed in the thread.\n" +
			"3. Restart the service and confirm the error no longer appears.\n" +
			"4. Add a regression check so the setting is not lost on redeploy.",
		Language:    "go",
		Tags:        []string{"mock", "pipeline", "configuration", "deployment", "regression"},
		Confidence:  0.9,
		Summary:     "mock one-line summary of the thread",
		ArticleType: category,
	}
	if category.HasCodeConcept() {
		article.CodeSnippet = "// mock fix extracted from the conversation\nexport GOMEMLIMIT=2GiB\n"
	}
	return article
}
