package playstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one accessor of a Path: either an object key or an array index.
type Step struct {
	key   string
	index int
	isKey bool
}

// Key returns a Step reading field name from an object.
func Key(name string) Step {
	return Step{key: name, isKey: true}
}

// Index returns a Step reading element i from an array.
func Index(i int) Step {
	return Step{index: i}
}

// String renders the step in bracket notation, e.g. ["data"] or [140].
func (s Step) String() string {
	if s.isKey {
		return "[" + strconv.Quote(s.key) + "]"
	}
	return "[" + strconv.Itoa(s.index) + "]"
}

func (s Step) apply(v any) (any, string) {
	if s.isKey {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Sprintf("expected object, got %s", kindOf(v))
		}
		next, ok := obj[s.key]
		if !ok {
			return nil, "missing key"
		}
		return next, ""
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Sprintf("expected array, got %s", kindOf(v))
	}
	if s.index < 0 || s.index >= len(arr) {
		return nil, fmt.Sprintf("index out of range (len %d)", len(arr))
	}
	return arr[s.index], ""
}

// Path is an ordered list of accessors into a decoded payload.
type Path []Step

// VersionPath locates the version string inside the listing's bootstrap
// payload: data[1][2][140][0][0][0].
var VersionPath = Path{Key("data"), Index(1), Index(2), Index(140), Index(0), Index(0), Index(0)}

// String renders the full path, e.g. ["data"][1][2].
func (p Path) String() string {
	var sb strings.Builder
	for _, s := range p {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Resolve applies every step to v in order and stops at the first step that
// cannot be satisfied.
func (p Path) Resolve(v any) (any, error) {
	current := v
	for i, s := range p {
		next, reason := s.apply(current)
		if reason != "" {
			return nil, &PathError{Path: p, Depth: i, Reason: reason}
		}
		current = next
	}
	return current, nil
}

// PathError reports the step at which a Path stopped resolving.
type PathError struct {
	Path   Path
	Depth  int
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s: step %d %s: %s", e.Path, e.Depth, e.Path[e.Depth], e.Reason)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
