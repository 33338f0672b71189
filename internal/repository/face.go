package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// implements it for tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type FaceRepository struct {
	pool PgxPool
}

func NewFaceRepository(pool PgxPool) *FaceRepository {
	return &FaceRepository{pool: pool}
}

// toVector converts an embedding to the pgvector wire type.
func toVector(embedding domain.Embedding) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}

// Create inserts the faces row for an enrollment. The embedding is
// mirrored into the pgvector column for SQL-side similarity search; the
// blob under FileName stays the load-time source of truth.
func (r *FaceRepository) Create(ctx context.Context, rec *domain.EncodingRecord) error {
	query := `
		INSERT INTO faces (id, label, file_name, embedding, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		uuid.New(),
		rec.Label,
		rec.FileName,
		toVector(rec.Encoding),
	).Scan(&rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("create face: %w", err)
	}

	return nil
}

// ListAll returns every (label, file_name) pair in insertion order. The
// caller resolves each file_name to its encoding blob.
func (r *FaceRepository) ListAll(ctx context.Context) ([]domain.EncodingRecord, error) {
	query := `
		SELECT label, file_name, created_at
		FROM faces
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list faces: %w", err)
	}
	defer rows.Close()

	var records []domain.EncodingRecord
	for rows.Next() {
		var rec domain.EncodingRecord
		if err := rows.Scan(&rec.Label, &rec.FileName, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan face row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate face rows: %w", err)
	}

	return records, nil
}

// DeleteByLabel removes every row enrolled under label and returns their
// storage keys so the caller can delete the matching blobs.
func (r *FaceRepository) DeleteByLabel(ctx context.Context, label string) ([]string, error) {
	query := `
		DELETE FROM faces
		WHERE label = $1
		RETURNING file_name
	`

	rows, err := r.pool.Query(ctx, query, label)
	if err != nil {
		return nil, fmt.Errorf("delete faces by label: %w", err)
	}
	defer rows.Close()

	var fileNames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan deleted file_name: %w", err)
		}
		fileNames = append(fileNames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted rows: %w", err)
	}

	if len(fileNames) == 0 {
		return nil, domain.ErrFaceNotFound
	}

	return fileNames, nil
}

// SearchByEmbedding ranks enrolled faces by L2 distance to the query
// embedding using the pgvector column.
func (r *FaceRepository) SearchByEmbedding(ctx context.Context, embedding domain.Embedding, limit int) ([]domain.SearchMatch, error) {
	query := `
		SELECT label, embedding <-> $1 AS distance
		FROM faces
		WHERE embedding IS NOT NULL
		ORDER BY distance
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, toVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search faces by embedding: %w", err)
	}
	defer rows.Close()

	var matches []domain.SearchMatch
	for rows.Next() {
		var m domain.SearchMatch
		if err := rows.Scan(&m.Label, &m.Distance); err != nil {
			return nil, fmt.Errorf("scan search match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search matches: %w", err)
	}

	return matches, nil
}

// EmbeddingColumnDim reads the declared dimension of the faces.embedding
// column from the catalog. For a vector column the type modifier is the
// dimension; -1 means the column is unconstrained.
func (r *FaceRepository) EmbeddingColumnDim(ctx context.Context) (int, error) {
	query := `
		SELECT atttypmod
		FROM pg_attribute
		WHERE attrelid = 'faces'::regclass AND attname = 'embedding'
	`

	var dim int
	if err := r.pool.QueryRow(ctx, query).Scan(&dim); err != nil {
		return 0, fmt.Errorf("read embedding column dimension: %w", err)
	}

	return dim, nil
}

// Count returns the number of enrolled faces.
func (r *FaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM faces`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count faces: %w", err)
	}
	return count, nil
}
