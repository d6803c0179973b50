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

import "github.com/poiesic/threadweave/core"

const (
	// QualityThreshold is the minimum score for an article to pass the gate.
	QualityThreshold = 0.70

	// MaxCompileRetries bounds the gate→compile loop. A thread whose drafts
	// fail the gate this many times is rejected without another compile.
	MaxCompileRetries = 3
)

// Quality signal weights. Confidence is scaled by the reported value; the
// others are pass/fail.
const (
	weightSolution   = 0.25 // solution longer than 200 chars
	weightCode       = 0.20 // code snippet longer than 50 chars
	weightConfidence = 0.20 // scaled by model confidence
	weightTags       = 0.15 // at least 5 tags
	weightDiagnosis  = 0.10 // diagnosis longer than 80 chars
	weightSummary    = 0.10 // non-empty summary
)

const (
	minSolutionLen  = 200
	minSnippetLen   = 50
	minTagCount     = 5
	minDiagnosisLen = 80
)

// Decision is the quality gate's verdict on a draft.
type Decision int

const (
	DecisionPass Decision = iota + 1
	DecisionRetry
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionPass:
		return "pass"
	case DecisionRetry:
		return "retry"
	case DecisionReject:
		return "reject"
	}
	return "unknown"
}

// QualityScore computes the weighted signal score for an article. Pure and
// deterministic; scoring the same article twice yields the same score.
//
// For article types without a meaningful code concept the code signal is
// removed from the denominator rather than scored as a fixed loss, so
// non-code articles are not structurally penalized. The result is capped
// at 1.0.
func QualityScore(article *core.CompiledArticle) float64 {
	var score float64

	if len(article.Solution) > minSolutionLen {
		score += weightSolution
	}
	if article.ArticleType.HasCodeConcept() && len(article.CodeSnippet) > minSnippetLen {
		score += weightCode
	}
	score += article.Confidence * weightConfidence
	if len(article.Tags) >= minTagCount {
		score += weightTags
	}
	if len(article.Diagnosis) > minDiagnosisLen {
		score += weightDiagnosis
	}
	if article.Summary != "" {
		score += weightSummary
	}

	if !article.ArticleType.HasCodeConcept() {
		score /= 1.0 - weightCode
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Decide maps a score and the retry count to a gate decision. retryCount is
// the number of drafts that have already failed the gate, including the
// current one when the score is below threshold.
func Decide(score float64, retryCount int) Decision {
	if score >= QualityThreshold {
		return DecisionPass
	}
	if retryCount < MaxCompileRetries {
		return DecisionRetry
	}
	return DecisionReject
}
