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
// OpenAI-compatible APIs.
//
// The same implementation serves both the hosted OpenAI service and
// local OpenAI-compatible servers (Ollama, LocalAI, vLLM); the
// difference is entirely in the ai.Config passed to the constructors.
// An empty host means the hosted default endpoint; an empty token falls
// back to the OPENAI_API_KEY environment variable.
//
// NewProvider matches the ai.Factory signature so it can be registered
// directly with an ai.Selector for both modes.
package openai
