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


// Package storage provides the storage abstraction layer for threadweave.
//
// This package defines repository interfaces that decouple storage
// implementation from the workflow logic. It allows different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public backend constructors return these interfaces so consumers never
// couple to BadgerDB specifics:
//
//	repo, err := badger.NewCheckpointRepository(backend)  // storage.CheckpointRepository
//
// # Repositories
//
//   - CheckpointRepository: suspended workflow state with versioned,
//     optimistic-concurrency writes
//   - ArticleRepository: the downstream sink for quality-passed articles
//
// # Thread Safety
//
// All repository implementations must be thread-safe; the orchestrator
// calls them from a worker pool.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
