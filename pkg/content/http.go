package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultFetchTimeout bounds a single content fetch.
	DefaultFetchTimeout = 10 * time.Second
)

// HTTPStore resolves variants against a configured table of URLs.
type HTTPStore struct {
	urls   map[Variant]string
	client *http.Client
}

type NewHTTPStoreOptions struct {
	// URLs maps variant identifiers to retrievable text resources.
	URLs map[Variant]string
	// Client is the HTTP client to fetch with. Defaults to a client with
	// DefaultFetchTimeout.
	Client *http.Client
}

// NewHTTPStore creates a new HTTP-backed content store.
func NewHTTPStore(opts NewHTTPStoreOptions) *HTTPStore {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &HTTPStore{
		urls:   opts.URLs,
		client: client,
	}
}

// Resolve fetches the payload for a variant. Unknown variants and transport
// or status failures yield a FetchError.
func (s *HTTPStore) Resolve(ctx context.Context, variant Variant) (*Payload, error) {
	url, ok := s.urls[variant]
	if !ok {
		return nil, &FetchError{Variant: variant, Reason: fmt.Errorf("no url configured")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Variant: variant, Reason: fmt.Errorf("failed to create request: %v", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Variant: variant, Reason: fmt.Errorf("failed to send request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{Variant: variant, Reason: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Variant: variant, Reason: fmt.Errorf("failed to read response body: %v", err)}
	}

	return &Payload{
		Variant:   variant,
		Data:      data,
		FetchedAt: time.Now(),
	}, nil
}
