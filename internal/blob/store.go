// Package blob stores face encoding vectors as immutable files on the
// local file system, one file per storage key.
package blob

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

const fileExt = ".enc"

// ErrCorrupt is returned when a blob's size is not a whole number of
// float64 words.
var ErrCorrupt = fmt.Errorf("corrupt encoding blob")

// Store is a local file system blob area rooted at a single directory.
// Blobs are written whole and never rewritten.
type Store struct {
	root string
}

// NewStore creates the root directory if absent and returns a Store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create encodings dir %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory the store writes into.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+fileExt)
}

// Put serializes the embedding as little-endian float64 words and writes
// it under name. The write goes through a temp file and rename so a crash
// mid-write never leaves a half-written blob under the final name.
func (s *Store) Put(name string, embedding domain.Embedding) error {
	buf := make([]byte, 8*len(embedding))
	for i, v := range embedding {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("write encoding blob %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit encoding blob %s: %w", name, err)
	}
	return nil
}

// Get reads the blob stored under name back into an embedding.
func (s *Store) Get(name string) (domain.Embedding, error) {
	buf, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("read encoding blob %s: %w", name, err)
	}
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrCorrupt, name, len(buf))
	}

	embedding := make(domain.Embedding, len(buf)/8)
	for i := range embedding {
		embedding[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return embedding, nil
}

// Remove deletes the blob stored under name. Removing an absent blob is
// not an error.
func (s *Store) Remove(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove encoding blob %s: %w", name, err)
	}
	return nil
}
