package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/campusmate/core"
	"github.com/poiesic/campusmate/storage"
)

// EmbeddingCache implements storage.EmbeddingCache using BadgerDB.
type EmbeddingCache struct {
	backend *Backend
	model   string
}

var _ storage.EmbeddingCache = (*EmbeddingCache)(nil)

// NewEmbeddingCache creates a cache for the given embedding model on top of backend.
func NewEmbeddingCache(backend *Backend, model string) (storage.EmbeddingCache, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	if model == "" {
		return nil, core.ErrEmptyModel
	}
	return &EmbeddingCache{
		backend: backend,
		model:   model,
	}, nil
}

// Model returns the embedding model this cache is bound to.
func (c *EmbeddingCache) Model() string {
	return c.model
}

// Close is a no-op; the backend is owned by the caller.
func (c *EmbeddingCache) Close() error {
	return nil
}

// GetEmbeddings looks up cached embeddings by ID.
func (c *EmbeddingCache) GetEmbeddings(ctx context.Context, ids ...core.ID) (map[core.ID]*core.Embedding, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	result := make(map[core.ID]*core.Embedding, len(ids))
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			embedding, err := c.readEmbedding(tx, id)
			if err != nil {
				return err
			}
			if embedding != nil {
				result[id] = embedding
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PutEmbeddings stores embeddings, replacing existing entries with the same ID.
func (c *EmbeddingCache) PutEmbeddings(ctx context.Context, embeddings ...*core.Embedding) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	for _, embedding := range embeddings {
		if err := core.ValidateEmbedding(embedding); err != nil {
			return err
		}
		if embedding.Model != c.model {
			return fmt.Errorf("%w: cache is bound to %q, got %q", storage.ErrModelMismatch, c.model, embedding.Model)
		}
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, embedding := range embeddings {
			if embedding.InsertedAt.IsZero() {
				embedding.InsertedAt = now
			}
			key := makeEmbeddingKey(c.model, embedding.Id)
			if err := tx.Set(key, storage.MarshalEmbedding(embedding)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of cached embeddings for the cache's model.
func (c *EmbeddingCache) Count(ctx context.Context) (int, error) {
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeEmbeddingPrefix(c.model)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readEmbedding reads an embedding from the transaction.
// Returns nil without error when the key does not exist.
func (c *EmbeddingCache) readEmbedding(tx *badger.Txn, id core.ID) (*core.Embedding, error) {
	item, err := tx.Get(makeEmbeddingKey(c.model, id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var embedding *core.Embedding
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		embedding, unmarshalErr = storage.UnmarshalEmbedding(val)
		return unmarshalErr
	})
	return embedding, err
}
