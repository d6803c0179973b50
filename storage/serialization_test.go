package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/threadweave/core"
)

func TestCheckpointSerialization(t *testing.T) {
	checkpoint := &core.Checkpoint{
		ThreadID: core.ID(42),
		State: core.WorkflowState{
			ThreadID: core.ID(42),
			Stage:    core.StageEvaluate,
			Category: core.CategoryTroubleshooting,
			Evaluation: &core.EvaluationResult{
				HasSolution: false,
				HasCode:     true,
				IsResolved:  false,
				Reasoning:   "question still open",
			},
			RetryCount: 1,
			LastError:  "evaluator returned malformed output",
		},
		Version:   3,
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data := MarshalCheckpoint(checkpoint)
	restored, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, checkpoint, restored)
}

func TestCheckpointSerialization_TruncatedData(t *testing.T) {
	checkpoint := &core.Checkpoint{
		ThreadID:  core.ID(7),
		State:     core.WorkflowState{ThreadID: core.ID(7), Stage: core.StageRoute},
		Version:   1,
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	data := MarshalCheckpoint(checkpoint)
	_, err := UnmarshalCheckpoint(data[:len(data)/2])
	assert.Error(t, err)
}

func TestPublishedArticleSerialization(t *testing.T) {
	article := &core.PublishedArticle{
		ThreadID:  core.ID(99),
		ChannelID: "chan-7",
		Article: core.CompiledArticle{
			Symptom:     "pods restart in a loop after deploy",
			Diagnosis:   "liveness probe fires before the service finishes warming its caches",
			Solution:    "raise initialDelaySeconds to cover warm-up and add a startup probe",
			CodeSnippet: "startupProbe:\n  httpGet:\n    path: /healthz",
			Language:    "yaml",
			Framework:   "kubernetes",
			Tags:        []string{"kubernetes", "probes", "deploy", "restart", "warmup"},
			Confidence:  0.85,
			Summary:     "crash loop caused by an impatient liveness probe",
			ArticleType: core.CategoryTroubleshooting,
		},
		Score:       0.96,
		PublishedAt: time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
	}

	data := MarshalPublishedArticle(article)
	restored, err := UnmarshalPublishedArticle(data)
	require.NoError(t, err)
	assert.Equal(t, article, restored)
}

func TestIDSerialization(t *testing.T) {
	id := core.ID(18446744073709551615)
	restored, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, restored)
}
