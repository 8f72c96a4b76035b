// Package playstore finds the latest published version of an Android
// application by reading its public Play Store listing.
//
// The listing page bootstraps its client with inline
// AF_initDataCallback(...) script blocks. GetVersion fetches the page once,
// scans it for those blocks, decodes each payload with a relaxed JSON5
// parser and reads the version at a fixed index path. The first block that
// resolves wins; if none does, the call fails with an *ExtractionError that
// carries the whole page for offline diagnosis.
//
// The index path mirrors the current page layout and will break when the
// store changes it. VersionPath is the one place to update.
package playstore
