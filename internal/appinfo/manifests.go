package appinfo

import "github.com/indaco/storever/internal/parser"

// Manifest describes where a project type records its identifier and version.
type Manifest struct {
	// Name is a short label for the project type.
	Name string

	// Package addresses the store package identifier.
	Package parser.FileConfig

	// Version addresses the current version. Empty Path means unsupported.
	Version parser.FileConfig
}

const (
	gradleApplicationID = `applicationId\s*=?\s*["']([^"']+)["']`
	gradleVersionName   = `versionName\s*=?\s*["']([^"']+)["']`
	manifestPackage     = `<manifest[^>]*\spackage="([^"]+)"`
	manifestVersionName = `<manifest[^>]*\sandroid:versionName="([^"]+)"`
)

// KnownManifests lists the manifests probed by Detector, in priority order.
// Paths are relative to the project root.
var KnownManifests = []Manifest{
	{
		Name:    "expo",
		Package: parser.FileConfig{Path: "app.json", Format: parser.FormatJSON, Field: "expo.android.package"},
		Version: parser.FileConfig{Path: "app.json", Format: parser.FormatJSON, Field: "expo.version"},
	},
	{
		Name:    "capacitor",
		Package: parser.FileConfig{Path: "capacitor.config.json", Format: parser.FormatJSON, Field: "appId"},
	},
	{
		Name:    "harmonyos",
		Package: parser.FileConfig{Path: "AppScope/app.json5", Format: parser.FormatJSON5, Field: "app.bundleName"},
		Version: parser.FileConfig{Path: "AppScope/app.json5", Format: parser.FormatJSON5, Field: "app.versionName"},
	},
	{
		Name:    "cargo-apk",
		Package: parser.FileConfig{Path: "Cargo.toml", Format: parser.FormatTOML, Field: "package.metadata.android.package"},
		Version: parser.FileConfig{Path: "Cargo.toml", Format: parser.FormatTOML, Field: "package.version"},
	},
	{
		Name:    "gradle",
		Package: parser.FileConfig{Path: "android/app/build.gradle", Format: parser.FormatRegex, Pattern: gradleApplicationID},
		Version: parser.FileConfig{Path: "android/app/build.gradle", Format: parser.FormatRegex, Pattern: gradleVersionName},
	},
	{
		Name:    "gradle-kts",
		Package: parser.FileConfig{Path: "android/app/build.gradle.kts", Format: parser.FormatRegex, Pattern: gradleApplicationID},
		Version: parser.FileConfig{Path: "android/app/build.gradle.kts", Format: parser.FormatRegex, Pattern: gradleVersionName},
	},
	{
		Name:    "android-manifest",
		Package: parser.FileConfig{Path: "android/app/src/main/AndroidManifest.xml", Format: parser.FormatRegex, Pattern: manifestPackage},
		Version: parser.FileConfig{Path: "android/app/src/main/AndroidManifest.xml", Format: parser.FormatRegex, Pattern: manifestVersionName},
	},
}
