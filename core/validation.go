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


package core

import (
	"fmt"
	"time"
)

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - ID and AuthorHash must not be empty
//   - Content must not be empty
//   - Timestamp must not be in the future
//
// NOT validated:
//   - ReplyTo (may reference a message outside the batch)
//   - Mentions (may reference unknown authors)
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if msg.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyMessageID)
	}

	if msg.AuthorHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyAuthor)
	}

	if msg.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyContent)
	}

	if !IsValidTimestamp(msg.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateArticle validates a CompiledArticle against the fixed compiler
// schema. The compiler treats a validation failure as a soft error: it
// degrades the draft to zero confidence instead of failing the workflow.
//
// Validation rules:
//   - Symptom, Diagnosis, Solution must not be empty
//   - Confidence must be within [0, 1]
//   - Tags must contain between 1 and 10 entries
//   - ArticleType must be one of the substantive categories
//
// NOT validated:
//   - CodeSnippet (optional; absent for non-code articles)
//   - Language, Framework (optional)
//   - Summary (scored by the quality gate, not the schema)
func ValidateArticle(article *CompiledArticle) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.Symptom == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptySymptom)
	}

	if article.Diagnosis == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyDiagnosis)
	}

	if article.Solution == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptySolution)
	}

	if article.Confidence < 0.0 || article.Confidence > 1.0 {
		return fmt.Errorf("%w: %w: %f", ErrInvalidArticle, ErrConfidenceRange, article.Confidence)
	}

	if len(article.Tags) < 1 || len(article.Tags) > 10 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidArticle, ErrTagCount, len(article.Tags))
	}

	if !article.ArticleType.Substantive() {
		return fmt.Errorf("%w: %w: %s", ErrInvalidArticle, ErrInvalidArticleType, article.ArticleType)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
