package service

import (
	"context"
	"fmt"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
	"github.com/HtetLinMaung/pytrueface/internal/extractor"
	"github.com/HtetLinMaung/pytrueface/internal/match"
)

// EncodingStoreInterface is the store surface the service needs.
type EncodingStoreInterface interface {
	Put(ctx context.Context, label string, embedding domain.Embedding) (*domain.EncodingRecord, error)
	Snapshot() []domain.KnownFace
	Remove(ctx context.Context, label string) error
}

// SearchRepositoryInterface ranks stored faces by embedding distance in SQL.
type SearchRepositoryInterface interface {
	SearchByEmbedding(ctx context.Context, embedding domain.Embedding, limit int) ([]domain.SearchMatch, error)
}

// FaceService wires the extractor, the single-face guard, the encoding
// store and the matcher into the operations the handlers expose.
type FaceService struct {
	extractor extractor.Extractor
	store     EncodingStoreInterface
	search    SearchRepositoryInterface
	matcher   *match.Matcher
	dim       int
}

func NewFaceService(
	ex extractor.Extractor,
	store EncodingStoreInterface,
	search SearchRepositoryInterface,
	matcher *match.Matcher,
	dim int,
) *FaceService {
	return &FaceService{
		extractor: ex,
		store:     store,
		search:    search,
		matcher:   matcher,
		dim:       dim,
	}
}

// singleEmbedding runs the extractor, enforces the single-face rule and
// rejects vectors that do not match the configured dimension. The check
// covers the compute-only path too, so a misconfigured oracle never leaks
// a wrong-length encoding to a caller.
func (s *FaceService) singleEmbedding(ctx context.Context, image []byte) (domain.Embedding, error) {
	embeddings, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("extract embeddings: %w", err)
	}

	embedding, err := match.SingleFace(embeddings)
	if err != nil {
		return nil, err
	}

	if s.dim > 0 && len(embedding) != s.dim {
		return nil, domain.ErrConfiguration.WithError(
			fmt.Errorf("extractor returned %d dimensions, expected %d", len(embedding), s.dim))
	}

	return embedding, nil
}

// Enroll computes the image's sole embedding and stores it under label.
func (s *FaceService) Enroll(ctx context.Context, label string, image []byte) (*domain.EncodingRecord, error) {
	embedding, err := s.singleEmbedding(ctx, image)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.Put(ctx, label, embedding)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Encode computes the image's sole embedding without persisting anything.
func (s *FaceService) Encode(ctx context.Context, image []byte) (domain.Embedding, error) {
	return s.singleEmbedding(ctx, image)
}

// Recognize matches the image's sole embedding against known, in the
// given order. No qualifying candidate yields ErrNoMatch.
func (s *FaceService) Recognize(ctx context.Context, image []byte, known []domain.KnownFace) (*domain.KnownFace, error) {
	embedding, err := s.singleEmbedding(ctx, image)
	if err != nil {
		return nil, err
	}

	found, err := s.matcher.Match(embedding, known)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrNoMatch
	}

	return found, nil
}

// KnownFaces returns the store snapshot used when a recognition request
// supplies no remote encoding list.
func (s *FaceService) KnownFaces() []domain.KnownFace {
	return s.store.Snapshot()
}

// Search ranks all enrolled faces by distance to the image's sole
// embedding, using the database-side vector index.
func (s *FaceService) Search(ctx context.Context, image []byte, limit int) ([]domain.SearchMatch, error) {
	embedding, err := s.singleEmbedding(ctx, image)
	if err != nil {
		return nil, err
	}

	matches, err := s.search.SearchByEmbedding(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("search faces: %w", err)
	}

	return matches, nil
}

// Remove deletes every enrollment under label.
func (s *FaceService) Remove(ctx context.Context, label string) error {
	return s.store.Remove(ctx, label)
}
