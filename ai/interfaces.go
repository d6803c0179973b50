package ai

import (
	"context"

	"github.com/poiesic/threadweave/core"
)

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ThreadClassifier assigns a thread transcript to one category label.
// Implementations must be thread-safe for concurrent use.
type ThreadClassifier interface {
	// Classify returns the raw category label for a thread transcript.
	// The label is normalized against the closed category set by the caller;
	// transport and provider failures are returned as errors, never mapped
	// to a label.
	Classify(ctx context.Context, transcript string) (string, error)
}

// ThreadEvaluator assesses whether a thread reached resolution.
// Implementations must be thread-safe for concurrent use.
type ThreadEvaluator interface {
	// Evaluate returns the model's free-text assessment of a thread.
	// The response is expected to contain a JSON object but is returned
	// raw; parsing and fail-closed handling belong to the caller.
	Evaluate(ctx context.Context, transcript string, category core.Category) (string, error)
}

// ArticleCompiler turns a resolved thread into a structured article.
// Implementations must be thread-safe for concurrent use.
type ArticleCompiler interface {
	// Compile returns an article conforming to the compiler schema.
	// If the model's output parses but fails schema validation, the partial
	// article is returned together with an error wrapping
	// core.ErrInvalidArticle so the caller can degrade it instead of
	// failing the workflow. Transport and provider failures are returned
	// as plain errors.
	Compile(ctx context.Context, transcript string, category core.Category, eval core.EvaluationResult) (*core.CompiledArticle, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider is created once per process and shared;
// its services are safe for concurrent use.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the thread classification service.
	Classifier() ThreadClassifier

	// Evaluator returns the thread evaluation service.
	Evaluator() ThreadEvaluator

	// Compiler returns the article compilation service.
	Compiler() ArticleCompiler

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
