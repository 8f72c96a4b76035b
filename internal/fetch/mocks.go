package fetch

import (
	"context"
	"errors"
	"sync"
)

// MockFetcher is a mock implementation of Fetcher for testing.
// It records every call so tests can assert on the requested URLs.
type MockFetcher struct {
	GetFunc func(ctx context.Context, url string, opts *Options) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall captures the arguments of one Get call.
type MockCall struct {
	URL  string
	Opts *Options
}

func (m *MockFetcher) Get(ctx context.Context, url string, opts *Options) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{URL: url, Opts: opts})
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, url, opts)
	}
	return "", errors.New("get not implemented")
}

// Calls returns a copy of the recorded calls.
func (m *MockFetcher) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// StaticBody returns a MockFetcher that always answers with body.
func StaticBody(body string) *MockFetcher {
	return &MockFetcher{
		GetFunc: func(context.Context, string, *Options) (string, error) {
			return body, nil
		},
	}
}
