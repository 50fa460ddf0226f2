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


// Package ai provides abstractions for the AI services used by CampusMate.
//
// The package is designed around three interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Ranker: Orders snippets by semantic similarity to a query
//   - AIProvider: Owns an Embedder and its configuration
//
// The query pipeline depends only on Ranker, so it can be exercised with a
// deterministic stub. The production Ranker lives in package index and is
// backed by an Embedder.
//
// # Implementation Packages
//
//   - ai/openai: Production embedder using OpenAI-compatible APIs via langchaingo
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return INTERFACE
// types. Test utility constructors (mock.NewMockEmbedder, mock.NewMockRanker)
// return CONCRETE types so tests can inject behavior and read call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "알고리즘 스터디")
package ai
