package playstore

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/indaco/storever/internal/appinfo"
	"github.com/indaco/storever/internal/fetch"
	"github.com/rs/zerolog"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name           string
		doc            string
		want           string
		wantCandidates int
	}{
		{
			name: "single block",
			doc:  page(marker(listingPayload("9.2.1"))),
			want: "9.2.1",
		},
		{
			name: "first resolving block wins",
			doc:  page(marker(listingPayload("1.0.0")), marker(listingPayload("2.0.0"))),
			want: "1.0.0",
		},
		{
			name: "falls back to second block",
			doc:  page(marker(shortPayload), marker(listingPayload("3.1.4"))),
			want: "3.1.4",
		},
		{
			name: "unparseable block skipped",
			doc:  page(marker("{not json5 at all"), marker(listingPayload("4.0"))),
			want: "4.0",
		},
		{
			name: "non-string value skipped",
			doc:  page(marker(strings.Replace(listingPayload("x"), `"x"`, "42", 1)), marker(listingPayload("5.0"))),
			want: "5.0",
		},
		{
			name: "empty string skipped",
			doc:  page(marker(listingPayload("")), marker(listingPayload("6.0"))),
			want: "6.0",
		},
		{
			name:           "no markers",
			doc:            page(),
			wantCandidates: 0,
		},
		{
			name:           "one block too short",
			doc:            page(marker(shortPayload)),
			wantCandidates: 1,
		},
		{
			name:           "all blocks fail",
			doc:            page(marker(shortPayload), marker("[]"), marker("{data: null}")),
			wantCandidates: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVersion(tt.doc, VersionPath)

			if tt.want == "" {
				var ee *ExtractionError
				if !errors.As(err, &ee) {
					t.Fatalf("ExtractVersion() error = %v, want *ExtractionError", err)
				}
				if ee.Text != tt.doc {
					t.Error("ExtractionError.Text should equal the full document")
				}
				if ee.Candidates != tt.wantCandidates {
					t.Errorf("Candidates = %d, want %d", ee.Candidates, tt.wantCandidates)
				}
				if ee.Error() != extractionMessage {
					t.Errorf("Error() = %q, want %q", ee.Error(), extractionMessage)
				}
				return
			}

			if err != nil {
				t.Fatalf("ExtractVersion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractVersion_CustomPath(t *testing.T) {
	doc := page(marker(`{data: [['7.7.7']]}`))

	got, err := ExtractVersion(doc, Path{Key("data"), Index(0), Index(0)})
	if err != nil {
		t.Fatalf("ExtractVersion() error = %v", err)
	}
	if got != "7.7.7" {
		t.Errorf("ExtractVersion() = %q, want %q", got, "7.7.7")
	}
}

func TestBuildStoreURL(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		name    string
		pkg     string
		country string
		want    string
	}{
		{
			name:    "explicit country",
			pkg:     "com.example.app",
			country: "fr",
			want:    DefaultBaseURL + "?id=com.example.app&hl=fr&date=1700000000123",
		},
		{
			name: "default country",
			pkg:  "com.example.app",
			want: DefaultBaseURL + "?id=com.example.app&hl=en&date=1700000000123",
		},
		{
			name:    "escaped values",
			pkg:     "a&b",
			country: "pt BR",
			want:    DefaultBaseURL + "?id=a%26b&hl=pt+BR&date=1700000000123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildStoreURL(DefaultBaseURL, tt.pkg, tt.country, now)
			if got != tt.want {
				t.Errorf("BuildStoreURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

// listingServer serves body for every request and records request URIs.
type listingServer struct {
	*httptest.Server
	mu   sync.Mutex
	uris []string
}

func newListingServer(t *testing.T, status int, body string) *listingServer {
	t.Helper()
	ls := &listingServer{}
	ls.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ls.mu.Lock()
		ls.uris = append(ls.uris, r.URL.RequestURI())
		ls.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ls.Close)
	return ls
}

func (ls *listingServer) requests() []string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return append([]string(nil), ls.uris...)
}

func TestProvider_GetVersion_HTTP(t *testing.T) {
	srv := newListingServer(t, http.StatusOK, page(marker(listingPayload("9.2.1"))))

	p := NewProvider(fetch.NewHTTPFetcher(srv.Client()), nil,
		WithBaseURL(srv.URL+"/store/apps/details"),
		WithClock(fixedClock(1700000000000)),
	)

	got, err := p.GetVersion(context.Background(), Options{PackageName: "com.example.app", Country: "fr"})
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if got.Version != "9.2.1" {
		t.Errorf("Version = %q, want %q", got.Version, "9.2.1")
	}

	reqs := srv.requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want exactly 1", len(reqs))
	}
	if got.StoreURL != srv.URL+reqs[0] {
		t.Errorf("StoreURL = %q, want the requested URL %q", got.StoreURL, srv.URL+reqs[0])
	}

	u, err := url.Parse(got.StoreURL)
	if err != nil {
		t.Fatalf("StoreURL does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("id") != "com.example.app" || q.Get("hl") != "fr" || q.Get("date") != "1700000000000" {
		t.Errorf("StoreURL query = %v", q)
	}
	if u.Path != "/store/apps/details" {
		t.Errorf("StoreURL path = %q", u.Path)
	}
}

func TestProvider_GetVersion_NonSuccessStatusWithData(t *testing.T) {
	srv := newListingServer(t, http.StatusNotFound, page(marker(listingPayload("1.2.3"))))
	p := NewProvider(fetch.NewHTTPFetcher(srv.Client()), nil, WithBaseURL(srv.URL))

	got, err := p.GetVersion(context.Background(), Options{PackageName: "com.example.app"})
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if got.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", got.Version, "1.2.3")
	}
}

func TestProvider_GetVersion_DateChangesBetweenCalls(t *testing.T) {
	mock := fetch.StaticBody(page(marker(listingPayload("1.0.0"))))

	ms := int64(1000)
	clock := func() time.Time {
		ms += 5
		return time.UnixMilli(ms)
	}
	p := NewProvider(mock, appinfo.Static("com.example.app"), WithClock(clock))

	first, err := p.GetVersion(context.Background(), Options{})
	if err != nil {
		t.Fatalf("first GetVersion() error = %v", err)
	}
	second, err := p.GetVersion(context.Background(), Options{})
	if err != nil {
		t.Fatalf("second GetVersion() error = %v", err)
	}

	if first.StoreURL == second.StoreURL {
		t.Errorf("StoreURL did not change between calls: %q", first.StoreURL)
	}
	for i, c := range mock.Calls() {
		want := []*VersionResult{first, second}[i].StoreURL
		if c.URL != want {
			t.Errorf("call %d URL = %q, want %q", i, c.URL, want)
		}
		if !strings.Contains(c.URL, "id=com.example.app&hl=en&date=") {
			t.Errorf("call %d URL = %q, missing identifier or default country", i, c.URL)
		}
	}
}

func TestProvider_GetVersion_PassesTransportOptions(t *testing.T) {
	mock := fetch.StaticBody(page(marker(listingPayload("1.0.0"))))
	opts := &fetch.Options{UserAgent: "ua", Timeout: time.Second}

	p := NewProvider(mock, nil)
	if _, err := p.GetVersion(context.Background(), Options{PackageName: "a.b", Transport: opts}); err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Opts != opts {
		t.Errorf("transport options not passed through unmodified: %+v", calls)
	}
}

func TestProvider_GetVersion_ExtractionError(t *testing.T) {
	doc := page(marker(shortPayload))

	for _, ignore := range []bool{false, true} {
		t.Run("ignoreErrors="+strconv.FormatBool(ignore), func(t *testing.T) {
			p := NewProvider(fetch.StaticBody(doc), nil)

			got, err := p.GetVersion(context.Background(), Options{PackageName: "a.b", IgnoreErrors: ignore})
			if got != nil {
				t.Errorf("GetVersion() = %+v, want nil result", got)
			}
			var ee *ExtractionError
			if !errors.As(err, &ee) {
				t.Fatalf("GetVersion() error = %v, want *ExtractionError", err)
			}
			if ee.Text != doc {
				t.Error("ExtractionError.Text should carry the full body")
			}
		})
	}
}

func TestProvider_GetVersion_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &fetch.MockFetcher{
		GetFunc: func(context.Context, string, *fetch.Options) (string, error) {
			return "", boom
		},
	}

	for _, ignore := range []bool{false, true} {
		t.Run("ignoreErrors="+strconv.FormatBool(ignore), func(t *testing.T) {
			p := NewProvider(mock, nil)
			_, err := p.GetVersion(context.Background(), Options{PackageName: "a.b", IgnoreErrors: ignore})
			if !errors.Is(err, boom) {
				t.Errorf("GetVersion() error = %v, want %v passed through", err, boom)
			}
		})
	}
}

func TestProvider_GetVersion_IdentifierLookup(t *testing.T) {
	lookupErr := errors.New("version info unavailable")
	failing := appinfo.SourceFunc(func() (string, error) { return "", lookupErr })

	tests := []struct {
		name        string
		source      appinfo.Source
		ignore      bool
		wantErrIs   error
		wantWarning bool
	}{
		{name: "source error propagates", source: failing, wantErrIs: lookupErr},
		{name: "source error ignored", source: failing, ignore: true, wantWarning: true},
		{name: "empty identifier propagates", source: appinfo.SourceFunc(func() (string, error) { return " ", nil }), wantErrIs: appinfo.ErrNotFound},
		{name: "no source propagates", source: nil, wantErrIs: errNoSource},
		{name: "no source ignored", source: nil, ignore: true, wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			mock := fetch.StaticBody(page(marker(listingPayload("1.0.0"))))
			p := NewProvider(mock, tt.source, WithLogger(zerolog.New(&logs)))

			got, err := p.GetVersion(context.Background(), Options{IgnoreErrors: tt.ignore})
			if got != nil {
				t.Errorf("GetVersion() = %+v, want no result", got)
			}
			if n := len(mock.Calls()); n != 0 {
				t.Errorf("fetcher called %d times, want no request", n)
			}

			if tt.wantErrIs != nil {
				var ce *ConfigurationError
				if !errors.As(err, &ce) {
					t.Fatalf("GetVersion() error = %v, want *ConfigurationError", err)
				}
				if !errors.Is(err, tt.wantErrIs) {
					t.Errorf("GetVersion() error = %v, want to wrap %v", err, tt.wantErrIs)
				}
			} else if err != nil {
				t.Errorf("GetVersion() error = %v, want nil", err)
			}

			hasWarning := strings.Contains(logs.String(), `"level":"warn"`)
			if hasWarning != tt.wantWarning {
				t.Errorf("warning logged = %v, want %v (logs: %s)", hasWarning, tt.wantWarning, logs.String())
			}
		})
	}
}

func TestProvider_GetVersion_SourceUsedOnlyWhenNeeded(t *testing.T) {
	called := false
	src := appinfo.SourceFunc(func() (string, error) {
		called = true
		return "from.source", nil
	})
	mock := fetch.StaticBody(page(marker(listingPayload("1.0.0"))))
	p := NewProvider(mock, src)

	if _, err := p.GetVersion(context.Background(), Options{PackageName: "explicit.id"}); err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if called {
		t.Error("source consulted although PackageName was given")
	}
	if !strings.Contains(mock.Calls()[0].URL, "id=explicit.id&") {
		t.Errorf("URL = %q, want explicit identifier", mock.Calls()[0].URL)
	}

	if _, err := p.GetVersion(context.Background(), Options{}); err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if !called {
		t.Error("source not consulted when PackageName was empty")
	}
}

func TestProvider_GetVersion_ConcurrentCalls(t *testing.T) {
	mock := fetch.StaticBody(page(marker(listingPayload("2.2.2"))))
	p := NewProvider(mock, appinfo.Static("com.example.app"))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.GetVersion(context.Background(), Options{})
			if err == nil && res.Version != "2.2.2" {
				err = errors.New("unexpected version " + res.Version)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
	if n := len(mock.Calls()); n != 8 {
		t.Errorf("calls = %d, want 8", n)
	}
}

func TestProvider_Name(t *testing.T) {
	if got := NewProvider(nil, nil).Name(); got != ProviderName {
		t.Errorf("Name() = %q, want %q", got, ProviderName)
	}
}
