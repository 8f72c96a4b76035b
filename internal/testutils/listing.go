// Package testutils provides fixtures shared by package tests.
package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ListingPage returns a store listing document whose bootstrap data carries
// version at the location the provider reads.
func ListingPage(version string) string {
	block := make([]any, 141)
	block[140] = []any{[]any{[]any{version}}}
	raw, err := json.Marshal([]any{nil, []any{nil, nil, block}})
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf(`<html><head><script nonce="abc">AF_initDataCallback({key: 'ds:5', hash: '7', data:%s, sideChannel: {}});</script></head><body></body></html>`, raw)
}

// EmptyListingPage returns a listing document without bootstrap data.
func EmptyListingPage() string {
	return `<html><head><title>Not found</title></head><body></body></html>`
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
