package appinfo

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/indaco/storever/internal/core"
	"github.com/indaco/storever/internal/parser"
)

// Detection is the outcome of probing a project root.
type Detection struct {
	// Manifest is the project type that matched.
	Manifest Manifest

	// Path is the file the identifier was read from.
	Path string

	// PackageName is the detected store identifier.
	PackageName string

	// Version is the current version, empty when the manifest has none.
	Version string
}

// Detector probes KnownManifests under a root directory.
type Detector struct {
	fs        core.FileSystem
	parser    *parser.Reader
	root      string
	manifests []Manifest
}

// NewDetector creates a Detector rooted at root.
func NewDetector(fs core.FileSystem, root string) *Detector {
	return &Detector{
		fs:        fs,
		parser:    parser.NewReader(fs),
		root:      root,
		manifests: KnownManifests,
	}
}

// WithManifests replaces the probed manifest list.
func (d *Detector) WithManifests(manifests []Manifest) *Detector {
	d.manifests = manifests
	return d
}

// Detect returns the first manifest that yields a non-empty identifier.
// Files that exist but cannot be read or lack the field are skipped.
func (d *Detector) Detect(ctx context.Context) (*Detection, error) {
	for _, m := range d.manifests {
		det, err := d.probe(ctx, m)
		if err != nil {
			return nil, err
		}
		if det != nil {
			return det, nil
		}
	}
	return nil, ErrNotFound
}

// DetectAll returns every manifest that yields an identifier, in priority
// order. The first element is what Detect would return.
func (d *Detector) DetectAll(ctx context.Context) ([]Detection, error) {
	var found []Detection
	for _, m := range d.manifests {
		det, err := d.probe(ctx, m)
		if err != nil {
			return nil, err
		}
		if det != nil {
			found = append(found, *det)
		}
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found, nil
}

// probe returns nil without error when m does not apply to the project.
func (d *Detector) probe(ctx context.Context, m Manifest) (*Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkgCfg := d.resolve(m.Package)
	if _, err := d.fs.Stat(ctx, pkgCfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	name, err := d.parser.ReadValue(ctx, pkgCfg)
	if err != nil || strings.TrimSpace(name) == "" {
		return nil, nil
	}

	det := &Detection{
		Manifest:    m,
		Path:        pkgCfg.Path,
		PackageName: strings.TrimSpace(name),
	}
	if m.Version.Path != "" {
		if v, err := d.parser.ReadValue(ctx, d.resolve(m.Version)); err == nil {
			det.Version = strings.TrimSpace(v)
		}
	}
	return det, nil
}

// PackageName implements Source.
func (d *Detector) PackageName() (string, error) {
	det, err := d.Detect(context.Background())
	if err != nil {
		return "", err
	}
	return det.PackageName, nil
}

// CurrentVersion returns the version recorded next to the detected identifier.
func (d *Detector) CurrentVersion(ctx context.Context) (string, error) {
	det, err := d.Detect(ctx)
	if err != nil {
		return "", err
	}
	if det.Version == "" {
		return "", errors.New("detected manifest does not record a version")
	}
	return det.Version, nil
}

func (d *Detector) resolve(cfg parser.FileConfig) parser.FileConfig {
	if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(d.root, cfg.Path)
	}
	return cfg
}
