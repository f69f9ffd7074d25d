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

// Package ai provides abstractions for the generative services used in Recapit.
//
// This package defines interfaces for text generation, remote file staging,
// and video analysis. It follows the dependency inversion principle, allowing
// the pipeline and business logic to depend on abstractions rather than
// concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Generator: Produces text from a prompt (chunk and combine summaries)
//   - FileStore: Stages media on the remote file service and manages its lifecycle
//   - VideoAnalyzer: Produces transcript and summary from a staged media file
//   - AIProvider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/gemini: Production implementation against a Gemini-style API
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (gemini.NewProvider) return INTERFACE types to enforce
// abstraction and prevent accidental coupling to concrete implementations.
//
//	provider, err := gemini.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockGenerator, mock.NewMockFileStore,
// mock.NewMockVideoAnalyzer) return CONCRETE types to enable test assertions
// and behavior injection via the mock's public methods (CallCount,
// WithXFunc, Reset, etc.).
//
// # Output Cleaning
//
// Model responses routinely open with conversational filler ("Sure, here is
// the summary you asked for:"). OutputCleaner strips these preambles in
// English and German with an ordered rule list while preserving markdown
// structure and emoji. See cleaner.go.
package ai
