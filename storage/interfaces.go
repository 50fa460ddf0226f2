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


package storage

import (
	"context"

	"github.com/poiesic/campusmate/core"
)

// EmbeddingCache stores snippet embeddings keyed by content ID.
// A cache instance is bound to one embedding model; vectors produced by
// different models never mix.
type EmbeddingCache interface {
	// Model returns the embedding model this cache is bound to.
	Model() string

	// GetEmbeddings looks up cached embeddings by ID.
	// Missing IDs are simply absent from the returned map.
	GetEmbeddings(ctx context.Context, ids ...core.ID) (map[core.ID]*core.Embedding, error)

	// PutEmbeddings stores embeddings, replacing any existing entry with the same ID.
	// Sets InsertedAt if not already set. Every embedding must validate and
	// carry the cache's model.
	PutEmbeddings(ctx context.Context, embeddings ...*core.Embedding) error

	// Count returns the number of cached embeddings for the cache's model.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the cache. The backend is not closed.
	Close() error
}
