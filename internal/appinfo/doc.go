// Package appinfo resolves the identity of the local application: its store
// package identifier and, when a manifest records one, its current version.
//
// Sources are probed from project manifests (Expo, Capacitor, HarmonyOS,
// cargo-apk, Gradle, AndroidManifest.xml) through the parser package.
package appinfo
