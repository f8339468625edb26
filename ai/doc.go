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


// Package ai provides abstractions for the AI services used in CadSentinel.
//
// This package defines interfaces for the three AI operations the pipeline
// depends on: text embeddings, drawing summarization, and chat completion.
// The core domain and business logic depend on these abstractions rather
// than on any concrete backend.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates fixed-width vector embeddings from text
//   - Summarizer: Produces structured summaries of parsed drawings
//   - Answerer: Completes chat prompts against assembled context
//   - Provider: Aggregates the three services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs,
//     covering both the hosted OpenAI service and local OpenAI-compatible
//     servers such as Ollama
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Backend Selection
//
// A Selector holds the process-wide active provider and supports switching
// between registered backends at runtime:
//
//	sel := ai.NewSelector()
//	sel.Register(ai.ModeOpenAI, ai.OpenAIConfig(ai.WithToken(key)), openai.NewProvider)
//	sel.Register(ai.ModeLocal, ai.LocalConfig(), openai.NewProvider)
//	if err := sel.Use(ai.ModeOpenAI); err != nil {
//	    log.Fatal(err)
//	}
//	defer sel.Close()
//
// Components that need AI services hold an ai.ProviderSource and read the
// active provider at the start of each operation, so a mode switch never
// mixes backends within a single run.
//
// # Vector Conformance
//
// Every Embedder implementation conforms its output to the configured
// dimension with ConformVector: longer vectors are truncated, shorter ones
// are zero-padded. Downstream storage and search can therefore assume a
// single fixed width regardless of which model produced a vector.
package ai
