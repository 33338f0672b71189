//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

func setupIntegrationTest(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "pytrueface_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/pytrueface_test?sslmode=disable", host, port.Port())

	db, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS "vector";

		CREATE TABLE IF NOT EXISTS faces (
			id UUID PRIMARY KEY,
			label TEXT NOT NULL,
			file_name TEXT NOT NULL UNIQUE,
			embedding vector(3) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_faces_label ON faces(label);
	`)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func TestFaceRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewFaceRepository(db)

	seed := []struct {
		label     string
		fileName  string
		embedding domain.Embedding
	}{
		{"alice", "blob-alice", domain.Embedding{1, 0, 0}},
		{"bob", "blob-bob", domain.Embedding{0, 1, 0}},
		{"carol", "blob-carol", domain.Embedding{0.9, 0.1, 0}},
	}

	t.Run("Create persists rows and returns created_at", func(t *testing.T) {
		for _, s := range seed {
			rec := &domain.EncodingRecord{
				Label:    s.label,
				FileName: s.fileName,
				Encoding: s.embedding,
			}
			require.NoError(t, repo.Create(ctx, rec))
			assert.False(t, rec.CreatedAt.IsZero())
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("ListAll preserves insertion order", func(t *testing.T) {
		records, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "alice", records[0].Label)
		assert.Equal(t, "bob", records[1].Label)
		assert.Equal(t, "carol", records[2].Label)
		assert.Equal(t, "blob-alice", records[0].FileName)
	})

	t.Run("SearchByEmbedding ranks by L2 distance", func(t *testing.T) {
		matches, err := repo.SearchByEmbedding(ctx, domain.Embedding{1, 0, 0}, 10)
		require.NoError(t, err)
		require.Len(t, matches, 3)

		assert.Equal(t, "alice", matches[0].Label)
		assert.InDelta(t, 0.0, matches[0].Distance, 1e-6)
		assert.Equal(t, "carol", matches[1].Label)
		assert.Equal(t, "bob", matches[2].Label)
	})

	t.Run("SearchByEmbedding respects limit", func(t *testing.T) {
		matches, err := repo.SearchByEmbedding(ctx, domain.Embedding{1, 0, 0}, 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "alice", matches[0].Label)
	})

	t.Run("DeleteByLabel returns storage keys", func(t *testing.T) {
		fileNames, err := repo.DeleteByLabel(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, []string{"blob-bob"}, fileNames)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("DeleteByLabel on unknown label", func(t *testing.T) {
		_, err := repo.DeleteByLabel(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrFaceNotFound)
	})
}
