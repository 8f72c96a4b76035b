package check

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/storever/internal/clix"
	"github.com/indaco/storever/internal/config"
	"github.com/indaco/storever/internal/fetch"
	"github.com/indaco/storever/internal/printer"
	"github.com/indaco/storever/internal/testutils"
	"github.com/urfave/cli/v3"
)

func setup(t *testing.T, storeVersion string) (*bytes.Buffer, string) {
	t.Helper()
	origFetcher := clix.FetcherFn
	clix.FetcherFn = func() fetch.Fetcher { return fetch.StaticBody(testutils.ListingPage(storeVersion)) }
	origRoot := clix.RootDir
	root := t.TempDir()
	clix.RootDir = root

	var buf bytes.Buffer
	origOut := printer.SetOutput(&buf)
	t.Cleanup(func() {
		clix.FetcherFn = origFetcher
		clix.RootDir = origRoot
		printer.SetOutput(origOut)
	})
	return &buf, root
}

func run(cfg *config.Config, args ...string) error {
	app := &cli.Command{Name: "storever", Commands: []*cli.Command{Run(cfg)}}
	return app.Run(context.Background(), append([]string{"storever", "check"}, args...))
}

func TestCheckCmd_Status(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		current string
		want    string
	}{
		{name: "up to date", store: "1.2.3", current: "1.2.3", want: "Up to date (1.2.3)"},
		{name: "update", store: "1.3.0", current: "1.2.3", want: "Update available: 1.2.3 -> 1.3.0"},
		{name: "ahead", store: "1.2.3", current: "2.0.0", want: "is ahead of the store"},
		{name: "loose store version", store: "9.2", current: "9.1.7", want: "Update available: 9.1.7 -> 9.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, _ := setup(t, tt.store)
			if err := run(&config.Config{Package: "com.example.app"}, "--current", tt.current); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestCheckCmd_FailOnUpdate(t *testing.T) {
	setup(t, "2.0.0")
	err := run(&config.Config{Package: "com.example.app"}, "--current", "1.0.0", "--fail-on-update")
	if !errors.Is(err, ErrUpdateAvailable) {
		t.Fatalf("expected ErrUpdateAvailable, got %v", err)
	}

	setup(t, "1.0.0")
	if err := run(&config.Config{Package: "com.example.app"}, "--current", "1.0.0", "--fail-on-update"); err != nil {
		t.Fatalf("unexpected error when up to date: %v", err)
	}
}

func TestCheckCmd_CurrentFromManifest(t *testing.T) {
	buf, root := setup(t, "50.1.0")
	testutils.WriteFile(t, root, "app.json", `{"expo": {"version": "50.0.2", "android": {"package": "com.expo.app"}}}`)

	if err := run(&config.Config{}, "--format", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"current":"50.0.2"`, `"status":"update-available"`, `"updateAvailable":true`, `"latest":"50.1.0"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestCheckCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no current version", wantErr: "cannot determine current version"},
		{name: "incomparable", args: []string{"--current", "banana"}, wantErr: "cannot compare versions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t, "1.0.0")
			err := run(&config.Config{Package: "com.example.app"}, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckCmd_IgnoredLookup(t *testing.T) {
	buf, _ := setup(t, "1.0.0")
	if err := run(&config.Config{}, "--current", "1.0.0", "--ignore-errors", "-f", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"current":"1.0.0","status":"unknown","updateAvailable":false,"latest":null}`
	if got := strings.TrimSpace(buf.String()); got != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}
