package playstore

import (
	"iter"
	"regexp"
)

// markerPattern matches one inline bootstrap block and captures the
// argument list of the callback. It is a targeted scan, not an HTML parse.
var markerPattern = regexp.MustCompile(`<script nonce="\S+">AF_initDataCallback\((.*?)\);`)

// Payloads yields the captured payload of every marker block in doc, in
// document order. Scanning stops as soon as the consumer stops iterating.
func Payloads(doc string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := doc
		for {
			loc := markerPattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			if !yield(rest[loc[2]:loc[3]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}
