package badger

import "github.com/poiesic/campusmate/storage"

// NewMemoryCache creates an in-memory embedding cache for testing.
// Caller must close both the cache and the backend when done.
func NewMemoryCache(model string) (storage.EmbeddingCache, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	cache, err := NewEmbeddingCache(backend, model)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return cache, backend, nil
}
