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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidArticle indicates a CompiledArticle failed schema validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyMessageID indicates the message ID field is empty.
	ErrEmptyMessageID = errors.New("message id cannot be empty")

	// ErrEmptyAuthor indicates the author hash field is empty.
	ErrEmptyAuthor = errors.New("author hash cannot be empty")

	// ErrEmptySymptom indicates the article symptom field is empty.
	ErrEmptySymptom = errors.New("symptom cannot be empty")

	// ErrEmptySolution indicates the article solution field is empty.
	ErrEmptySolution = errors.New("solution cannot be empty")

	// ErrEmptyDiagnosis indicates the article diagnosis field is empty.
	ErrEmptyDiagnosis = errors.New("diagnosis cannot be empty")

	// ErrConfidenceRange indicates a confidence value outside [0,1].
	ErrConfidenceRange = errors.New("confidence must be between 0 and 1")

	// ErrTagCount indicates an out-of-range tag count.
	ErrTagCount = errors.New("articles require between 1 and 10 tags")

	// ErrInvalidArticleType indicates an article type outside the closed
	// substantive category set.
	ErrInvalidArticleType = errors.New("invalid article type")
)
