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


// Package workflow runs the per-thread extraction state machine and the
// batch orchestration around it.
//
// A thread moves through an explicit state machine:
//
//	ROUTE → NOISE (terminal)
//	      → EVALUATE → INCOMPLETE (checkpointed, resumable)
//	                 → COMPILE → QUALITY_GATE → PASS (terminal, published)
//	                                          → RETRY → COMPILE
//	                                          → REJECT (terminal)
//
// Stage transitions are driven by a switch over an enumerated stage type;
// there is no recursion and no panic-driven control flow. The quality gate
// may loop back to COMPILE up to three times before REJECT.
//
// Threads that suspend at EVALUATE persist their state as a versioned
// checkpoint keyed by the thread's stable identity. A later batch that
// reconstructs the same identity resumes at EVALUATE instead of restarting
// from ROUTE; optimistic version checks reject a concurrent second resume.
//
// Provider calls are the only suspension points. Each is wrapped in a
// bounded timeout plus transport-level retry with exponential backoff,
// which is distinct from the business-level gate retry counter.
package workflow
