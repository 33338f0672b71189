// Package extractor defines the boundary to the face-embedding oracle:
// a capability that maps an image to zero or more fixed-length embedding
// vectors, one per detected face. The algorithm behind it is external.
package extractor

import (
	"context"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// Extractor produces the embeddings for every face detected in an image.
// An image with no detectable face yields an empty slice, not an error;
// deciding whether that is acceptable is the caller's concern.
type Extractor interface {
	Extract(ctx context.Context, image []byte) ([]domain.Embedding, error)
}
