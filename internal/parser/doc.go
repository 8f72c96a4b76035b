// Package parser reads single string fields out of structured documents in
// JSON, JSON5, YAML, TOML, raw text and regex-addressed formats. It also hosts
// ParseLoose, the relaxed JSON5 decoder used for inline page data.
package parser
