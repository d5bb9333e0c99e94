package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// downloadTimeout bounds the archive download.
	downloadTimeout = 10 * time.Minute
	// userAgent is the User-Agent header sent with requests.
	userAgent = "mediapress/1.0"
)

// Fetcher downloads the platform archive.
//
// It performs a single GET with no retry and buffers the whole body in
// memory before the caller writes it to the staging file. That is fine
// for archives in the tens-of-megabytes range; larger payloads would
// need streaming.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a new fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: downloadTimeout,
		},
	}
}

// Fetch downloads url and returns the response body. Connection
// failures and non-success status codes both surface as errors wrapping
// ErrNetwork.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d for %s", ErrNetwork, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrNetwork, err)
	}

	return body, nil
}
