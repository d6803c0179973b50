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


package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/threadweave/core"
)

func TestQualityScore_AllSignals(t *testing.T) {
	// Solution 250 chars, snippet 80 chars, confidence 0.80, 6 tags,
	// diagnosis 90 chars, summary present:
	// 0.25 + 0.20 + 0.16 + 0.15 + 0.10 + 0.10 = 0.96
	article := &core.CompiledArticle{
		Symptom:     "service crashes on startup",
		Diagnosis:   strings.Repeat("d", 90),
		Solution:    strings.Repeat("s", 250),
		CodeSnippet: strings.Repeat("c", 80),
		Tags:        []string{"a", "b", "c", "d", "e", "f"},
		Confidence:  0.80,
		Summary:     "crash caused by missing config",
		ArticleType: core.CategoryTroubleshooting,
	}

	score := QualityScore(article)
	assert.InDelta(t, 0.96, score, 1e-9)
	assert.Equal(t, DecisionPass, Decide(score, 0))
}

func TestQualityScore_NonCodeFairness(t *testing.T) {
	// A question-answer article with no code must not be structurally
	// penalized: the code weight leaves the denominator entirely.
	article := &core.CompiledArticle{
		Symptom:     "how to configure retention",
		Diagnosis:   strings.Repeat("d", 85),
		Solution:    strings.Repeat("s", 220),
		Tags:        []string{"a", "b", "c", "d", "e"},
		Confidence:  0.9,
		Summary:     "retention is set per topic",
		ArticleType: core.CategoryQuestionAnswer,
	}

	score := QualityScore(article)
	assert.GreaterOrEqual(t, score, 0.70)
	assert.InDelta(t, 0.78/0.80, score, 1e-9)
}

func TestQualityScore_Idempotent(t *testing.T) {
	article := &core.CompiledArticle{
		Solution:    strings.Repeat("s", 300),
		Confidence:  0.5,
		Summary:     "something",
		ArticleType: core.CategoryTroubleshooting,
	}

	assert.Equal(t, QualityScore(article), QualityScore(article))
}

func TestQualityScore_BoundaryLengthsDoNotCount(t *testing.T) {
	// Exactly at the limits: none of the length signals fire.
	article := &core.CompiledArticle{
		Diagnosis:   strings.Repeat("d", 80),
		Solution:    strings.Repeat("s", 200),
		CodeSnippet: strings.Repeat("c", 50),
		Tags:        []string{"a", "b", "c", "d"},
		Confidence:  0,
		ArticleType: core.CategoryTroubleshooting,
	}

	assert.Equal(t, 0.0, QualityScore(article))
}

func TestQualityScore_CodeSignalRequiresCodeConcept(t *testing.T) {
	// A guide with a long snippet gets no code credit; the snippet signal
	// only exists for article types with a code concept.
	article := &core.CompiledArticle{
		CodeSnippet: strings.Repeat("c", 300),
		Confidence:  0,
		ArticleType: core.CategoryGuide,
	}

	assert.Equal(t, 0.0, QualityScore(article))
}

func TestQualityScore_CappedAtOne(t *testing.T) {
	article := &core.CompiledArticle{
		Diagnosis:   strings.Repeat("d", 100),
		Solution:    strings.Repeat("s", 300),
		Tags:        []string{"a", "b", "c", "d", "e"},
		Confidence:  1.0,
		Summary:     "everything present",
		ArticleType: core.CategoryDiscussionSummary,
	}

	assert.LessOrEqual(t, QualityScore(article), 1.0)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		retryCount int
		want       Decision
	}{
		{"pass at threshold", 0.70, 0, DecisionPass},
		{"pass above threshold", 0.96, 3, DecisionPass},
		{"retry first failure", 0.50, 1, DecisionRetry},
		{"retry second failure", 0.50, 2, DecisionRetry},
		{"reject third failure", 0.50, 3, DecisionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.score, tt.retryCount))
		})
	}
}
