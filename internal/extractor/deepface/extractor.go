// Package deepface implements the embedding extractor against a DeepFace
// represent endpoint over HTTP.
package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// Extractor turns images into face embeddings via the DeepFace API.
type Extractor struct {
	client *Client
}

// NewExtractor creates a DeepFace-backed extractor.
func NewExtractor(config Config) *Extractor {
	return &Extractor{
		client: NewClient(config),
	}
}

// Extract returns one embedding per face DeepFace detects in the image.
// Zero faces is an empty slice, not an error.
func (e *Extractor) Extract(ctx context.Context, image []byte) ([]domain.Embedding, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := e.client.Represent(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("extract embeddings: %w", err)
	}

	embeddings := make([]domain.Embedding, 0, len(resp.Results))
	for _, result := range resp.Results {
		embeddings = append(embeddings, domain.Embedding(result.Embedding))
	}

	return embeddings, nil
}
