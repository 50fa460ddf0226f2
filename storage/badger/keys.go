package badger

import (
	"encoding/binary"

	"github.com/poiesic/campusmate/core"
)

const (
	embeddingPrefix = "emb"
)

// makeEmbeddingPrefix returns the key prefix shared by all embeddings of a model.
// Format: prefix:model:
func makeEmbeddingPrefix(model string) []byte {
	return []byte(embeddingPrefix + ":" + model + ":")
}

// makeEmbeddingKey generates a key for a cached embedding.
// Format: prefix:model:id (id as 8 BigEndian bytes)
func makeEmbeddingKey(model string, id core.ID) []byte {
	prefix := makeEmbeddingPrefix(model)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
