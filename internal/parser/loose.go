package parser

import (
	"fmt"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

// ParseLoose decodes relaxed JSON (unquoted keys, single-quoted strings,
// trailing commas, comments) into generic values: map[string]any, []any,
// string, float64, bool or nil.
func ParseLoose(data []byte) (any, error) {
	var v any
	if err := json5.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("json5 parse: %w", err)
	}
	return v, nil
}
