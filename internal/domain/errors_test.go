package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "No faces found in image.", ErrNoFaceDetected.Error())

	wrapped := ErrStoreWrite.WithError(errors.New("disk full"))
	assert.Equal(t, "Failed to persist face encoding.: disk full", wrapped.Error())
}

func TestAppError_WithError(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := ErrRemoteFetch.WithError(cause)

	// The sentinel itself must stay untouched
	assert.Nil(t, ErrRemoteFetch.Err)
	assert.Equal(t, ErrRemoteFetch.Code, wrapped.Code)
	assert.Equal(t, ErrRemoteFetch.Message, wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "bare sentinel",
			err:    ErrConfiguration,
			target: ErrConfiguration,
			want:   true,
		},
		{
			name:   "sentinel with cause",
			err:    ErrConfiguration.WithError(errors.New("dimension mismatch: 128 vs 64")),
			target: ErrConfiguration,
			want:   true,
		},
		{
			name:   "sentinel with cause wrapped again",
			err:    fmt.Errorf("warm store: %w", ErrStoreLoad.WithError(errors.New("db down"))),
			target: ErrStoreLoad,
			want:   true,
		},
		{
			name:   "different sentinel",
			err:    ErrStoreWrite.WithError(errors.New("disk full")),
			target: ErrStoreLoad,
			want:   false,
		},
		{
			name:   "non-app error target",
			err:    ErrNoMatch,
			target: errors.New("No matching face found."),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestAppError_As(t *testing.T) {
	err := fmt.Errorf("enroll face: %w", ErrMultipleFaces)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Multiple faces found in image.", appErr.Message)
}

func TestEmbedding_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Embedding
		eps  float64
		want bool
	}{
		{"identical", Embedding{0.1, 0.2}, Embedding{0.1, 0.2}, 1e-9, true},
		{"within tolerance", Embedding{0.1, 0.2}, Embedding{0.1 + 1e-10, 0.2}, 1e-9, true},
		{"outside tolerance", Embedding{0.1, 0.2}, Embedding{0.2, 0.2}, 1e-9, false},
		{"length mismatch", Embedding{0.1}, Embedding{0.1, 0.2}, 1e-9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b, tt.eps))
		})
	}
}
