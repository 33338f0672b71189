package knownset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

func newTestFetcher(dim int) *Fetcher {
	return NewFetcher(2*time.Second, dim)
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"label": "alice", "face_encoding": [0.1, 0.2, 0.3]},
			{"label": "bob", "face_encoding": [0.4, 0.5, 0.6]}
		]`))
	}))
	defer server.Close()

	known, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, known, 2)
	// Order of the remote list is preserved
	assert.Equal(t, "alice", known[0].Label)
	assert.Equal(t, domain.Embedding{0.1, 0.2, 0.3}, known[0].Encoding)
	assert.Equal(t, "bob", known[1].Label)
}

func TestFetcher_Fetch_EmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	known, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, known)
}

func TestFetcher_Fetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrRemoteFetch)
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	_, err := newTestFetcher(3).Fetch(context.Background(), "http://127.0.0.1:1/encodings")
	assert.ErrorIs(t, err, domain.ErrRemoteFetch)
}

func TestFetcher_Fetch_MalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json at all`},
		{"object instead of array", `{"label": "alice"}`},
		{"non-numeric encoding element", `[{"label": "alice", "face_encoding": [0.1, "oops", 0.3]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
			assert.ErrorIs(t, err, domain.ErrRemoteFetch)
		})
	}
}

func TestFetcher_Fetch_WrongDimension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label": "alice", "face_encoding": [0.1, 0.2]}]`))
	}))
	defer server.Close()

	_, err := newTestFetcher(3).Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
