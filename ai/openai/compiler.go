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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
	"github.com/tmc/langchaingo/llms"
)

// Compiler implements ai.ArticleCompiler using OpenAI-compatible chat APIs.
type Compiler struct {
	client llms.Model
	logger *slog.Logger
}

// compiledArticleJSON matches the structure requested from the LLM.
type compiledArticleJSON struct {
	Symptom     string   `json:"symptom"`
	Diagnosis   string   `json:"diagnosis"`
	Solution    string   `json:"solution"`
	CodeSnippet string   `json:"code_snippet"`
	Language    string   `json:"language"`
	Framework   string   `json:"framework"`
	Tags        []string `json:"tags"`
	Confidence  float64  `json:"confidence"`
	Summary     string   `json:"thread_summary"`
}

func newCompiler(client llms.Model) *Compiler {
	return &Compiler{
		client: client,
		logger: slog.Default().With("component", "openai-compiler"),
	}
}

// NewCompiler creates a new article compiler using the provided configuration.
//
// Returns ai.ArticleCompiler interface to enforce abstraction.
func NewCompiler(config *ai.Config) (ai.ArticleCompiler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	return newCompiler(client), nil
}

// Compile produces a structured article from a resolved thread.
// Responses that parse but fail schema validation are returned together
// with an error wrapping core.ErrInvalidArticle; responses that don't parse
// at all return (nil, error wrapping core.ErrInvalidArticle). Transport
// failures are returned unwrapped.
func (c *Compiler) Compile(ctx context.Context, transcript string, category core.Category, eval core.EvaluationResult) (*core.CompiledArticle, error) {
	systemPrompt := fmt.Sprintf(compilerSystemPrompt, category.String())
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("Compile this resolved thread into structured knowledge:\n\n" + transcript)},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(1500),
		llms.WithJSONMode())
	if err != nil {
		c.logger.Error("compilation call failed", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, errors.New("compiler returned no choices")
	}

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	// Try to repair common JSON issues
	responseText = repairJSON(responseText)

	var parsed compiledArticleJSON
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		c.logger.Warn("compiler response did not parse", "err", err)
		return nil, fmt.Errorf("%w: unparsable compiler response: %w", core.ErrInvalidArticle, err)
	}

	article := &core.CompiledArticle{
		Symptom:     parsed.Symptom,
		Diagnosis:   parsed.Diagnosis,
		Solution:    parsed.Solution,
		CodeSnippet: parsed.CodeSnippet,
		Language:    parsed.Language,
		Framework:   parsed.Framework,
		Tags:        parsed.Tags,
		Confidence:  parsed.Confidence,
		Summary:     parsed.Summary,
		ArticleType: category,
	}

	if err := core.ValidateArticle(article); err != nil {
		c.logger.Warn("compiler response failed schema validation", "err", err)
		return article, err
	}

	c.logger.Debug("compiled article",
		"summary", article.Summary,
		"confidence", article.Confidence,
		"tags", article.Tags)
	return article, nil
}
