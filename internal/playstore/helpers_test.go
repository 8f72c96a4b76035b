package playstore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// listingPayload builds a bootstrap payload holding version at VersionPath,
// written in the relaxed syntax the store actually serves.
func listingPayload(version string) string {
	block := make([]any, 141)
	block[140] = []any{[]any{[]any{version}}}
	data := []any{nil, []any{nil, nil, block}}
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf(`{key: 'ds:5', hash: '7', data:%s, sideChannel: {}}`, raw)
}

// shortPayload parses fine but the nested array is too short for VersionPath.
const shortPayload = `{key: 'ds:5', hash: '7', data:[null, [null, null, [1, 2, 3]]], sideChannel: {}}`

func marker(payload string) string {
	return `<script nonce="n0nc3">AF_initDataCallback(` + payload + `);</script>`
}

func page(blocks ...string) string {
	var sb strings.Builder
	sb.WriteString("<!doctype html><html><head><title>Listing</title>")
	sb.WriteString(`<script nonce="n0nc3">window.WIZ_global_data = {};</script>`)
	for _, b := range blocks {
		sb.WriteString(b)
		sb.WriteString("\n<script>var unrelated = 1;</script>\n")
	}
	sb.WriteString("</head><body><div>content</div></body></html>")
	return sb.String()
}
