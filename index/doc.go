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

// Package index implements ai.Ranker over vector embeddings.
//
// Each Rank call builds a throwaway in-memory index over the snippets it is
// given: snippet vectors are read from an optional storage.EmbeddingCache,
// missing ones are embedded in one batch and written back, and snippets are
// ordered by cosine similarity to the embedded query.
package index
