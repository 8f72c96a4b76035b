package playstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/indaco/storever/internal/appinfo"
	"github.com/indaco/storever/internal/fetch"
	"github.com/indaco/storever/internal/parser"
	"github.com/rs/zerolog"
)

// ProviderName identifies this version source.
const ProviderName = "play-store"

// Options configures a single GetVersion call.
type Options struct {
	// PackageName is the store identifier. When empty it is taken from the
	// provider's appinfo.Source.
	PackageName string

	// Country is the hl locale parameter. Defaults to DefaultCountry.
	Country string

	// Transport is passed to the Fetcher unmodified.
	Transport *fetch.Options

	// IgnoreErrors swallows identifier lookup failures. Fetch and extraction
	// failures are always returned.
	IgnoreErrors bool
}

// VersionResult is the outcome of a successful lookup.
type VersionResult struct {
	Version  string `json:"version"`
	StoreURL string `json:"storeUrl"`
}

// Provider looks up the latest version of an application on the Play Store.
// A Provider holds no mutable state and is safe for concurrent use.
type Provider struct {
	fetcher fetch.Fetcher
	source  appinfo.Source
	baseURL string
	path    Path
	now     func() time.Time
	log     zerolog.Logger
}

// Option customises a Provider.
type Option func(*Provider)

// WithBaseURL points the provider at a different listing endpoint.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = baseURL }
}

// WithPath replaces VersionPath.
func WithPath(path Path) Option {
	return func(p *Provider) { p.path = path }
}

// WithClock replaces time.Now for the cache-busting timestamp.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Provider) { p.log = log }
}

// NewProvider creates a Provider. source may be nil when every call supplies
// Options.PackageName.
func NewProvider(fetcher fetch.Fetcher, source appinfo.Source, opts ...Option) *Provider {
	if fetcher == nil {
		fetcher = fetch.NewHTTPFetcher(nil)
	}
	p := &Provider{
		fetcher: fetcher,
		source:  source,
		baseURL: DefaultBaseURL,
		path:    VersionPath,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

// GetVersion fetches the listing page once and extracts the latest version.
//
// When the identifier cannot be determined and opts.IgnoreErrors is set, the
// failure is logged as a warning and GetVersion returns (nil, nil). Transport
// errors and *ExtractionError are returned regardless of IgnoreErrors.
func (p *Provider) GetVersion(ctx context.Context, opts Options) (*VersionResult, error) {
	storeURL, err := p.storeURL(opts)
	if err != nil {
		if opts.IgnoreErrors {
			p.log.Warn().Err(err).Str("provider", ProviderName).Msg("ignoring version lookup error")
			return nil, nil
		}
		return nil, err
	}

	p.log.Debug().Str("url", storeURL).Msg("fetching store listing")
	body, err := p.fetcher.Get(ctx, storeURL, opts.Transport)
	if err != nil {
		return nil, err
	}

	version, err := p.extract(body)
	if err != nil {
		return nil, err
	}

	return &VersionResult{Version: version, StoreURL: storeURL}, nil
}

func (p *Provider) storeURL(opts Options) (string, error) {
	name := strings.TrimSpace(opts.PackageName)
	if name == "" {
		if p.source == nil {
			return "", &ConfigurationError{Err: errNoSource}
		}
		var err error
		name, err = p.source.PackageName()
		if err != nil {
			return "", &ConfigurationError{Err: err}
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return "", &ConfigurationError{Err: appinfo.ErrNotFound}
		}
	}

	return BuildStoreURL(p.baseURL, name, opts.Country, p.now()), nil
}

func (p *Provider) extract(doc string) (string, error) {
	return extractVersion(doc, p.path, p.log)
}

// ExtractVersion returns the version found in the first marker block of doc
// whose payload resolves along path to a non-empty string.
func ExtractVersion(doc string, path Path) (string, error) {
	return extractVersion(doc, path, zerolog.Nop())
}

var errNotVersion = errors.New("value is not a non-empty string")

func extractVersion(doc string, path Path, log zerolog.Logger) (string, error) {
	candidates := 0
	for payload := range Payloads(doc) {
		candidates++
		version, err := resolveVersion(payload, path)
		if err != nil {
			log.Debug().Err(err).Int("candidate", candidates).Msg("skipping inline data block")
			continue
		}
		log.Debug().Int("candidate", candidates).Str("version", version).Msg("version found")
		return version, nil
	}

	log.Debug().Int("candidates", candidates).Int("bytes", len(doc)).Msg("no inline data block matched")
	return "", newExtractionError(doc, candidates)
}

func resolveVersion(payload string, path Path) (string, error) {
	data, err := parser.ParseLoose([]byte(payload))
	if err != nil {
		return "", err
	}
	value, err := path.Resolve(data)
	if err != nil {
		return "", err
	}
	version, ok := value.(string)
	if !ok || version == "" {
		return "", fmt.Errorf("path %s: %w", path, errNotVersion)
	}
	return version, nil
}
