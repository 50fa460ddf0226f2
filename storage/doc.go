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


// Package storage provides the storage abstraction layer for CampusMate.
//
// The source tables are never persisted; the only thing stored is the
// embedding of each snippet handed to the semantic ranker, so that the
// embedding cost of a table is paid once rather than on every query.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage interface:
//
//	cache, err := badger.NewEmbeddingCache(backend, "embeddinggemma")  // returns storage.EmbeddingCache
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	cache, backend, err := badger.NewMemoryCache("mock-embedding")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer cache.Close()
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
