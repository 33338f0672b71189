// Package match implements the single-face guard and the embedding
// distance matcher. Both are pure functions of their inputs.
package match

import (
	"fmt"
	"math"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// DefaultTolerance is the maximum Euclidean distance at which two
// embeddings are considered the same subject. 0.6 is the accept/reject
// boundary of the dlib 128-d face encoding space.
const DefaultTolerance = 0.6

// SingleFace enforces that an image yielded exactly one embedding.
// Enrollment and single-subject recognition both need an unambiguous
// one-to-one mapping between image and subject; silently picking one of
// several faces would attach the wrong label.
func SingleFace(embeddings []domain.Embedding) (domain.Embedding, error) {
	if len(embeddings) == 0 {
		return nil, domain.ErrNoFaceDetected
	}
	if len(embeddings) > 1 {
		return nil, domain.ErrMultipleFaces
	}
	return embeddings[0], nil
}

// Distance computes the Euclidean distance between two embeddings.
// Mismatched dimensionality means the vectors come from incompatible
// extractors and is reported as an error, never as a silent non-match.
func Distance(a, b domain.Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.ErrConfiguration.WithError(
			fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b)))
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// Matcher decides whether a query embedding matches any known face.
type Matcher struct {
	tolerance float64
}

// NewMatcher creates a Matcher with the given acceptance tolerance.
// Non-positive tolerance falls back to DefaultTolerance.
func NewMatcher(tolerance float64) *Matcher {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Matcher{tolerance: tolerance}
}

// Tolerance returns the configured acceptance tolerance.
func (m *Matcher) Tolerance() float64 {
	return m.tolerance
}

// Match iterates known in its given order and returns the first face whose
// distance to query is at or below the tolerance. First match wins; no
// global minimum search. A nil result with nil error is a legitimate
// negative ("no matching face"), not a fault.
func (m *Matcher) Match(query domain.Embedding, known []domain.KnownFace) (*domain.KnownFace, error) {
	for i := range known {
		dist, err := Distance(query, known[i].Encoding)
		if err != nil {
			return nil, err
		}
		if dist <= m.tolerance {
			return &known[i], nil
		}
	}
	return nil, nil
}
