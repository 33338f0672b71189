package domain

import (
	"math"
	"time"
)

// Embedding is a fixed-length face encoding vector produced by the extractor.
// It is never mutated after extraction.
type Embedding []float64

// Equal reports whether two embeddings have the same values within eps.
func (e Embedding) Equal(other Embedding, eps float64) bool {
	if len(e) != len(other) {
		return false
	}
	for i := range e {
		if math.Abs(e[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// KnownFace is one labeled entry of the set a recognition request is
// matched against.
type KnownFace struct {
	Label    string    `json:"label"`
	Encoding Embedding `json:"face_encoding"`
}

// EncodingRecord is a durably stored face encoding. FileName is the
// generated storage key linking the faces row to its encoding blob.
type EncodingRecord struct {
	Label     string    `json:"label"`
	FileName  string    `json:"file_name"`
	Encoding  Embedding `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchMatch is one ranked result of a stored-face similarity search.
type SearchMatch struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}
