// Package mock provides a deterministic extractor for tests and local
// development, with no external face service required.
package mock

import (
	"bytes"
	"context"
	"crypto/sha256"
	"math"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// Markers that control how many faces the mock "detects" in an image.
// Any other image of plausible size yields exactly one face.
var (
	markerNoFace    = []byte("noface")
	markerTwoFaces  = []byte("twofaces")
	minPlausibleLen = 1000
)

// Extractor produces embeddings derived from the image hash, so the same
// image always yields the same vector.
type Extractor struct {
	dim int
}

// New creates a mock extractor emitting vectors of the given dimension.
func New(dim int) *Extractor {
	return &Extractor{dim: dim}
}

func (e *Extractor) Extract(ctx context.Context, image []byte) ([]domain.Embedding, error) {
	if len(image) < minPlausibleLen {
		return nil, domain.ErrInvalidImage
	}

	if bytes.Contains(image, markerNoFace) {
		return []domain.Embedding{}, nil
	}

	if bytes.Contains(image, markerTwoFaces) {
		return []domain.Embedding{
			e.embeddingFor(image, 0),
			e.embeddingFor(image, 1),
		}, nil
	}

	return []domain.Embedding{e.embeddingFor(image, 0)}, nil
}

// embeddingFor derives a unit-length vector from the image hash. The face
// index perturbs the seed so multi-face images yield distinct vectors.
func (e *Extractor) embeddingFor(image []byte, face byte) domain.Embedding {
	hash := sha256.Sum256(append(image, face))
	embedding := make(domain.Embedding, e.dim)
	hashLen := len(hash)

	for i := 0; i < e.dim; i++ {
		embedding[i] = (float64(hash[i%hashLen])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}
