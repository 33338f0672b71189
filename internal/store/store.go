// Package store owns the durable face-encoding mapping and its in-process
// snapshot. Durable state lives in the faces table plus one blob per
// encoding; the in-memory set is populated once at warm-up and updated
// synchronously on each successful enrollment.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// FaceRepo is the relational half of the store.
type FaceRepo interface {
	Create(ctx context.Context, rec *domain.EncodingRecord) error
	ListAll(ctx context.Context) ([]domain.EncodingRecord, error)
	DeleteByLabel(ctx context.Context, label string) ([]string, error)
}

// BlobStore is the blob half, keyed by generated storage key.
type BlobStore interface {
	Put(name string, embedding domain.Embedding) error
	Get(name string) (domain.Embedding, error)
	Remove(name string) error
}

// EncodingStore maps labels to face embeddings. The in-memory set is
// last-write-wins per label; duplicate enrollments keep all durable rows.
type EncodingStore struct {
	repo   FaceRepo
	blobs  BlobStore
	dim    int
	logger *slog.Logger

	mu    sync.RWMutex
	faces []domain.KnownFace
	index map[string]int // label -> slot in faces
}

func New(repo FaceRepo, blobs BlobStore, dim int, logger *slog.Logger) *EncodingStore {
	return &EncodingStore{
		repo:   repo,
		blobs:  blobs,
		dim:    dim,
		logger: logger,
		index:  make(map[string]int),
	}
}

// Warm loads every persisted encoding into memory. Called once at startup
// before the store is handed to request handlers. A missing, corrupt or
// wrong-dimension blob fails the warm-up; stored rows that cannot be
// resolved are never silently dropped into the snapshot.
func (s *EncodingStore) Warm(ctx context.Context) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return domain.ErrStoreLoad.WithError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		embedding, err := s.blobs.Get(rec.FileName)
		if err != nil {
			return domain.ErrStoreLoad.WithError(
				fmt.Errorf("resolve blob for label %q: %w", rec.Label, err))
		}
		if len(embedding) != s.dim {
			return domain.ErrConfiguration.WithError(
				fmt.Errorf("blob for label %q has %d dimensions, store expects %d",
					rec.Label, len(embedding), s.dim))
		}
		s.upsertLocked(rec.Label, embedding)
	}

	s.logger.Info("encoding store warmed",
		slog.Int("rows", len(records)),
		slog.Int("labels", len(s.faces)),
	)
	return nil
}

// Put durably stores an embedding under label and mirrors it into memory.
// The blob is written first; if the row insert fails the blob is removed
// again and the in-memory set stays untouched, so a half-written
// enrollment is never visible.
func (s *EncodingStore) Put(ctx context.Context, label string, embedding domain.Embedding) (*domain.EncodingRecord, error) {
	if len(embedding) != s.dim {
		return nil, domain.ErrConfiguration.WithError(
			fmt.Errorf("embedding has %d dimensions, store expects %d", len(embedding), s.dim))
	}

	rec := &domain.EncodingRecord{
		Label:    label,
		FileName: uuid.New().String(),
		Encoding: embedding,
	}

	if err := s.blobs.Put(rec.FileName, embedding); err != nil {
		return nil, domain.ErrStoreWrite.WithError(err)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if rmErr := s.blobs.Remove(rec.FileName); rmErr != nil {
			s.logger.Warn("orphaned encoding blob after failed insert",
				slog.String("file_name", rec.FileName),
				slog.Any("error", rmErr),
			)
		}
		return nil, domain.ErrStoreWrite.WithError(err)
	}

	s.mu.Lock()
	s.upsertLocked(label, embedding)
	s.mu.Unlock()

	return rec, nil
}

// Snapshot returns a coherent copy of the current label set in insertion
// order. Never touches durable storage.
func (s *EncodingStore) Snapshot() []domain.KnownFace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.KnownFace, len(s.faces))
	copy(snapshot, s.faces)
	return snapshot
}

// Remove deletes every enrollment under label: durable rows, their blobs,
// and the in-memory entry. Blob removal after a committed row delete is
// best-effort; a leftover file is unreferenced and harmless.
func (s *EncodingStore) Remove(ctx context.Context, label string) error {
	fileNames, err := s.repo.DeleteByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, domain.ErrFaceNotFound) {
			return err
		}
		return domain.ErrStoreWrite.WithError(err)
	}

	for _, name := range fileNames {
		if err := s.blobs.Remove(name); err != nil {
			s.logger.Warn("failed to remove encoding blob",
				slog.String("file_name", name),
				slog.Any("error", err),
			)
		}
	}

	s.mu.Lock()
	s.evictLocked(label)
	s.mu.Unlock()

	return nil
}

// Count returns the number of distinct labels currently in memory.
func (s *EncodingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.faces)
}

func (s *EncodingStore) upsertLocked(label string, embedding domain.Embedding) {
	if i, ok := s.index[label]; ok {
		s.faces[i].Encoding = embedding
		return
	}
	s.index[label] = len(s.faces)
	s.faces = append(s.faces, domain.KnownFace{Label: label, Encoding: embedding})
}

func (s *EncodingStore) evictLocked(label string) {
	i, ok := s.index[label]
	if !ok {
		return
	}
	s.faces = append(s.faces[:i], s.faces[i+1:]...)
	delete(s.index, label)
	for label, slot := range s.index {
		if slot > i {
			s.index[label] = slot - 1
		}
	}
}
