// Package knownset retrieves caller-supplied known-face lists over HTTP
// for recognition requests that do not match against the local store.
package knownset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/HtetLinMaung/pytrueface/internal/domain"
)

// maxBodySize bounds the remote list so a misbehaving endpoint cannot
// exhaust memory.
const maxBodySize = 32 * 1024 * 1024

// Fetcher downloads and decodes a remote encoding list.
type Fetcher struct {
	httpClient *http.Client
	dim        int
}

// NewFetcher creates a Fetcher. dim is the expected embedding dimension;
// entries of any other length fail the fetch.
func NewFetcher(timeout time.Duration, dim int) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		dim:        dim,
	}
}

// Fetch GETs url and decodes a JSON array of {label, face_encoding}
// objects. Network failures, non-2xx statuses and malformed JSON are
// remote-fetch errors; a well-formed list with wrong-length vectors is a
// configuration error (incompatible embedding space).
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]domain.KnownFace, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrRemoteFetch.WithError(fmt.Errorf("create request: %w", err))
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrRemoteFetch.WithError(fmt.Errorf("fetch %s: %w", url, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrRemoteFetch.WithError(
			fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.ErrRemoteFetch.WithError(fmt.Errorf("read body: %w", err))
	}

	var known []domain.KnownFace
	if err := json.Unmarshal(body, &known); err != nil {
		return nil, domain.ErrRemoteFetch.WithError(fmt.Errorf("decode encoding list: %w", err))
	}

	for i, face := range known {
		if len(face.Encoding) != f.dim {
			return nil, domain.ErrConfiguration.WithError(
				fmt.Errorf("entry %d (%q) has %d dimensions, expected %d",
					i, face.Label, len(face.Encoding), f.dim))
		}
	}

	return known, nil
}
