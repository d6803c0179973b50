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


// Package openai implements the ai service interfaces against
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// All chat calls run at temperature 0 for reproducibility. The compiler
// additionally requests JSON mode and validates the parsed article against
// the core schema; the evaluator deliberately returns the raw model text so
// the workflow can fail closed on malformed output.
package openai
