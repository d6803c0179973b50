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
	"errors"
	"fmt"

	"github.com/poiesic/threadweave/core"
)

var (
	// ErrInvalidMaxAttempts indicates an invalid retry configuration.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrUnparsableEvaluation indicates that the evaluator response did not
	// contain a usable JSON assessment. The workflow fails closed to an
	// INCOMPLETE checkpoint on this error.
	ErrUnparsableEvaluation = errors.New("unparsable evaluation response")

	// ErrUnknownStage indicates a checkpoint carried a stage the runner
	// does not know how to execute.
	ErrUnknownStage = errors.New("unknown workflow stage")
)

// InfraError marks a provider failure that survived transport retries.
// It fails the whole thread workflow and is reported at the batch level;
// it is never reinterpreted as a business outcome such as NOISE.
type InfraError struct {
	Stage core.Stage
	Err   error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("infrastructure failure at stage %s: %v", e.Stage, e.Err)
}

func (e *InfraError) Unwrap() error {
	return e.Err
}
