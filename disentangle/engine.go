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


package disentangle

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity for a
	// semantic link between two messages.
	DefaultSimilarityThreshold = 0.75

	// DefaultTemporalWindow is the maximum timestamp gap for a semantic
	// link. Explicit links ignore it.
	DefaultTemporalWindow = 4 * time.Hour
)

// Engine clusters chat messages into conversation threads.
type Engine struct {
	embedder            ai.Embedder
	similarityThreshold float64
	temporalWindow      time.Duration
	logger              *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSimilarityThreshold overrides the minimum cosine similarity for a
// semantic link.
func WithSimilarityThreshold(threshold float64) EngineOption {
	return func(e *Engine) {
		e.similarityThreshold = threshold
	}
}

// WithTemporalWindow overrides the maximum timestamp gap for a semantic link.
func WithTemporalWindow(window time.Duration) EngineOption {
	return func(e *Engine) {
		e.temporalWindow = window
	}
}

// NewEngine creates a disentanglement engine backed by the given embedder.
func NewEngine(embedder ai.Embedder, logger *slog.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	engine := &Engine{
		embedder:            embedder,
		similarityThreshold: DefaultSimilarityThreshold,
		temporalWindow:      DefaultTemporalWindow,
		logger:              logger.With("component", "disentangle"),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Cluster groups a chronological batch of messages from one channel into
// threads. Each returned thread has its messages in chronological order;
// threads themselves are ordered by their earliest message. An isolated
// message forms a singleton thread.
//
// The result is deterministic for identical embeddings and timestamps.
func (e *Engine) Cluster(ctx context.Context, channelID string, messages []core.Message) ([]*core.Thread, error) {
	if len(messages) == 0 {
		return nil, nil
	}

	for i := range messages {
		if err := core.ValidateMessage(&messages[i]); err != nil {
			return nil, fmt.Errorf("message %q: %w", messages[i].ID, err)
		}
	}

	// Process in timestamp order so graph indices are stable regardless of
	// how the caller assembled the batch.
	ordered := make([]core.Message, len(messages))
	copy(ordered, messages)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	embeddings, err := e.embedMessages(ctx, ordered)
	if err != nil {
		return nil, err
	}

	adjacency := e.buildAdjacency(ordered, embeddings)
	components := connectedComponents(adjacency)

	threads := make([]*core.Thread, 0, len(components))
	for _, component := range components {
		msgs := make([]core.Message, len(component))
		for i, idx := range component {
			msgs[i] = ordered[idx]
		}
		threads = append(threads, &core.Thread{
			Id:        core.NewThreadID(channelID, msgs[0]),
			ChannelID: channelID,
			Status:    core.ThreadStatusOpen,
			Messages:  msgs,
		})
	}

	e.logger.Info("clustered batch",
		"channel_id", channelID,
		"messages", len(ordered),
		"threads", len(threads))

	return threads, nil
}

// embedMessages fetches unit-normalized embeddings for every message content,
// preserving order.
func (e *Engine) embedMessages(ctx context.Context, messages []core.Message) ([][]float32, error) {
	texts := make([]string, len(messages))
	for i, msg := range messages {
		texts[i] = msg.Content
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(embeddings) != len(messages) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d messages", len(embeddings), len(messages))
	}

	for i, vec := range embeddings {
		embeddings[i] = NormalizeVector(vec)
	}
	return embeddings, nil
}

// buildAdjacency computes the message graph. Quadratic in batch size; fine
// for tens to low hundreds of messages. If batches grow past that, this is
// the place to add an indexed nearest-neighbor search.
func (e *Engine) buildAdjacency(messages []core.Message, embeddings [][]float32) [][]bool {
	n := len(messages)
	adjacency := make([][]bool, n)
	for i := range adjacency {
		adjacency[i] = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if e.shouldLink(&messages[i], &messages[j], embeddings[i], embeddings[j]) {
				adjacency[i][j] = true
				adjacency[j][i] = true
			}
		}
	}
	return adjacency
}

// shouldLink decides whether two messages belong to the same thread.
// Explicit links win unconditionally; semantic links require both the
// similarity threshold and the temporal window.
func (e *Engine) shouldLink(a, b *core.Message, vecA, vecB []float32) bool {
	if hasExplicitLink(a, b) {
		return true
	}

	delta := a.Timestamp.Sub(b.Timestamp)
	if delta < 0 {
		delta = -delta
	}
	if delta > e.temporalWindow {
		return false
	}

	return CosineSimilarity(vecA, vecB) >= e.similarityThreshold
}

// hasExplicitLink reports whether one message replies to the other or
// @mentions the other's author, in either direction.
func hasExplicitLink(a, b *core.Message) bool {
	if a.ReplyTo != "" && a.ReplyTo == b.ID {
		return true
	}
	if b.ReplyTo != "" && b.ReplyTo == a.ID {
		return true
	}
	for _, mention := range a.Mentions {
		if mention == b.AuthorHash {
			return true
		}
	}
	for _, mention := range b.Mentions {
		if mention == a.AuthorHash {
			return true
		}
	}
	return false
}

// connectedComponents finds components via BFS. Indices inside a component
// stay in ascending order, which is chronological order for a sorted batch,
// and components are emitted in order of their smallest index.
func connectedComponents(adjacency [][]bool) [][]int {
	n := len(adjacency)
	visited := make([]bool, n)
	components := make([][]int, 0, n)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		queue := []int{start}
		visited[start] = true
		component := []int{}

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			component = append(component, node)

			for neighbor := 0; neighbor < n; neighbor++ {
				if adjacency[node][neighbor] && !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}

		sort.Ints(component)
		components = append(components, component)
	}

	return components
}
