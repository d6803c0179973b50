package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/threadweave/core"
)

func TestParseEvaluation(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		parsed, err := parseEvaluation(`{"has_solution": true, "has_code": false, "is_resolved": true, "reasoning": "fixed"}`)
		require.NoError(t, err)
		assert.True(t, parsed.HasSolution)
		assert.False(t, parsed.HasCode)
		assert.True(t, parsed.IsResolved)
		assert.Equal(t, "fixed", parsed.Reasoning)
	})

	t.Run("markdown fenced", func(t *testing.T) {
		raw := "```json\n{\"has_solution\": true, \"is_resolved\": true, \"reasoning\": \"ok\"}\n```"
		parsed, err := parseEvaluation(raw)
		require.NoError(t, err)
		assert.True(t, parsed.HasSolution)
	})

	t.Run("surrounded by prose", func(t *testing.T) {
		raw := `Here is my assessment: {"has_solution": false, "is_resolved": false, "reasoning": "open"} Hope that helps.`
		parsed, err := parseEvaluation(raw)
		require.NoError(t, err)
		assert.False(t, parsed.HasSolution)
		assert.Equal(t, "open", parsed.Reasoning)
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, err := parseEvaluation("I could not evaluate this thread.")
		assert.ErrorIs(t, err, ErrUnparsableEvaluation)
	})

	t.Run("broken JSON", func(t *testing.T) {
		_, err := parseEvaluation(`{"has_solution": tru}`)
		assert.ErrorIs(t, err, ErrUnparsableEvaluation)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := parseEvaluation("")
		assert.ErrorIs(t, err, ErrUnparsableEvaluation)
	})
}

func TestResolvedForCategory(t *testing.T) {
	withSolution := &core.EvaluationResult{HasSolution: true}
	withoutSolution := &core.EvaluationResult{HasSolution: false}

	tests := []struct {
		name     string
		category core.Category
		eval     *core.EvaluationResult
		want     bool
	}{
		{"troubleshooting with solution", core.CategoryTroubleshooting, withSolution, true},
		{"troubleshooting without solution", core.CategoryTroubleshooting, withoutSolution, false},
		{"question-answer with answer", core.CategoryQuestionAnswer, withSolution, true},
		{"question-answer without answer", core.CategoryQuestionAnswer, withoutSolution, false},
		{"guide always resolved", core.CategoryGuide, withoutSolution, true},
		{"discussion summary always resolved", core.CategoryDiscussionSummary, withoutSolution, true},
		{"noise never resolved", core.CategoryNoise, withSolution, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvedForCategory(tt.category, tt.eval))
		})
	}
}
