package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Options is the caller-supplied transport configuration. It is passed
// through to the Fetcher unmodified; a nil *Options means transport defaults.
type Options struct {
	// UserAgent overrides the User-Agent header when non-empty.
	UserAgent string

	// Header holds extra request headers.
	Header http.Header

	// Timeout bounds the whole request. Zero leaves the client default.
	Timeout time.Duration
}

// Fetcher downloads a URL and returns the response body as text.
type Fetcher interface {
	Get(ctx context.Context, url string, opts *Options) (string, error)
}

// TransportError wraps any failure raised by the underlying HTTP call.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPFetcher implements Fetcher with net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher using client, or http.DefaultClient
// when client is nil.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Get issues a single GET request and reads the whole body.
func (f *HTTPFetcher) Get(ctx context.Context, url string, opts *Options) (string, error) {
	if opts != nil && opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	if opts != nil {
		for key, values := range opts.Header {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
		if opts.UserAgent != "" {
			req.Header.Set("User-Agent", opts.UserAgent)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return string(body), nil
}

// Ensure HTTPFetcher implements Fetcher.
var _ Fetcher = (*HTTPFetcher)(nil)
