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


// Package disentangle clusters a chronological batch of chat messages into
// conversation threads.
//
// The engine builds an undirected graph over the batch. Two messages are
// linked when one explicitly references the other (a reply or an @mention of
// the other author), or when their embeddings are semantically close AND the
// messages are temporally close. Explicit links are unconditional; two
// messages hours apart joined by a reply always land in the same thread.
// Threads are the connected components of this graph, discovered via BFS,
// with messages ordered chronologically inside each thread.
//
// Clustering is deterministic for fixed embeddings and timestamps: component
// discovery order never changes membership, and threads are emitted in order
// of their earliest message.
package disentangle
