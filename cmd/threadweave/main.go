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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/threadweave"
	"github.com/poiesic/threadweave/ai"
	"github.com/poiesic/threadweave/core"
	"github.com/poiesic/threadweave/disentangle"
	"github.com/poiesic/threadweave/storage/badger"
	"github.com/poiesic/threadweave/workflow"
)

func main() {
	app := &cli.App{
		Name:  "threadweave",
		Usage: "Knowledge extraction from chat message batches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "process",
				Usage:  "Cluster a message batch into threads and run the extraction workflow",
				Action: processCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to a JSON batch file (see the seeder tool)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "chat-host",
						Usage: "Chat service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "chat-model",
						Usage:    "Chat model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (defaults to chat-host)",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Maximum concurrent workflow instances",
						Value: 4,
					},
					&cli.Float64Flag{
						Name:  "similarity-threshold",
						Usage: "Minimum cosine similarity for a semantic link",
						Value: disentangle.DefaultSimilarityThreshold,
					},
					&cli.DurationFlag{
						Name:  "temporal-window",
						Usage: "Maximum timestamp gap for a semantic link",
						Value: disentangle.DefaultTemporalWindow,
					},
					&cli.DurationFlag{
						Name:  "request-timeout",
						Usage: "Timeout for each provider call",
						Value: 60 * time.Second,
					},
				},
			},
			{
				Name:   "articles",
				Usage:  "List published articles",
				Action: articlesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Print full article bodies instead of summaries",
					},
				},
			},
			{
				Name:   "checkpoints",
				Usage:  "List suspended thread checkpoints",
				Action: checkpointsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// batchFile is the on-disk shape of one channel batch.
type batchFile struct {
	ChannelID string         `json:"channel_id"`
	Messages  []batchMessage `json:"messages"`
}

type batchMessage struct {
	ID         string    `json:"id"`
	AuthorHash string    `json:"author_hash"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	ReplyTo    string    `json:"reply_to,omitempty"`
	Mentions   []string  `json:"mentions,omitempty"`
	HasCode    bool      `json:"has_code,omitempty"`
}

func processCommand(c *cli.Context) error {
	ctx := context.Background()

	batch, err := readBatchFile(c.String("input"))
	if err != nil {
		return err
	}

	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("chat-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRequestTimeout(c.Duration("request-timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	extractor, err := threadweave.NewExtractor(c.String("db"), threadweave.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open extractor: %w", err)
	}
	defer extractor.Close()

	orchestrator := extractor.NewOrchestrator(
		[]disentangle.EngineOption{
			disentangle.WithSimilarityThreshold(c.Float64("similarity-threshold")),
			disentangle.WithTemporalWindow(c.Duration("temporal-window")),
		},
		[]workflow.RunnerOption{
			workflow.WithRequestTimeout(c.Duration("request-timeout")),
		},
		workflow.WithPoolSize(c.Int("pool-size")),
	)

	messages := make([]core.Message, len(batch.Messages))
	for i, m := range batch.Messages {
		messages[i] = core.Message{
			ID:         m.ID,
			AuthorHash: m.AuthorHash,
			Content:    m.Content,
			Timestamp:  m.Timestamp,
			ReplyTo:    m.ReplyTo,
			Mentions:   m.Mentions,
			HasCode:    m.HasCode,
		}
	}

	result, err := orchestrator.ProcessBatch(ctx, batch.ChannelID, messages)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	fmt.Printf("Batch %s: %d messages, %d threads\n", result.BatchID, len(messages), result.Threads)
	fmt.Printf("  published:  %d\n", result.Count(core.OutcomePublished))
	fmt.Printf("  noise:      %d\n", result.Count(core.OutcomeNoise))
	fmt.Printf("  incomplete: %d\n", result.Count(core.OutcomeIncomplete))
	fmt.Printf("  rejected:   %d\n", result.Count(core.OutcomeRejected))
	for _, r := range result.Results {
		if r.Outcome == core.OutcomeRejected {
			fmt.Printf("  rejected thread %d: score %.2f after %d retries\n", r.ThreadID, r.Score, r.RetryCount)
		}
	}
	for _, f := range result.Failures {
		fmt.Printf("  failed thread %d: %v\n", f.ThreadID, f.Err)
	}
	if len(result.Failures) > 0 {
		return fmt.Errorf("%d thread(s) failed; rerun the batch to retry", len(result.Failures))
	}
	return nil
}

func articlesCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewArticleRepository(backend)
	defer repo.Close()

	articles, err := repo.ListArticles(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if len(articles) == 0 {
		fmt.Println("No published articles.")
		return nil
	}

	for _, a := range articles {
		fmt.Printf("thread %d [%s] score %.2f (%s)\n", a.ThreadID, a.Article.ArticleType, a.Score, a.PublishedAt.Format(time.RFC3339))
		fmt.Printf("  %s\n", a.Article.Summary)
		fmt.Printf("  tags: %s\n", strings.Join(a.Article.Tags, ", "))
		if c.Bool("full") {
			fmt.Printf("  symptom:   %s\n", a.Article.Symptom)
			fmt.Printf("  diagnosis: %s\n", a.Article.Diagnosis)
			fmt.Printf("  solution:  %s\n", a.Article.Solution)
			if a.Article.CodeSnippet != "" {
				fmt.Printf("  code:\n%s\n", a.Article.CodeSnippet)
			}
		}
	}
	return nil
}

func checkpointsCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewCheckpointRepository(backend)
	defer repo.Close()

	checkpoints, err := repo.ListCheckpoints(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list checkpoints: %w", err)
	}

	if len(checkpoints) == 0 {
		fmt.Println("No suspended threads.")
		return nil
	}

	for _, cp := range checkpoints {
		fmt.Printf("thread %d: stage %s, category %s, version %d, updated %s\n",
			cp.ThreadID, cp.State.Stage, cp.State.Category, cp.Version, cp.UpdatedAt.Format(time.RFC3339))
		if cp.State.LastError != "" {
			fmt.Printf("  last error: %s\n", cp.State.LastError)
		}
	}
	return nil
}

func readBatchFile(path string) (*batchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if batch.ChannelID == "" {
		return nil, fmt.Errorf("batch file has no channel_id")
	}
	if len(batch.Messages) == 0 {
		return nil, fmt.Errorf("batch file has no messages")
	}
	return &batch, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
