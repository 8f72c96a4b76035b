package core

// Marshaler serializes a value, typically to YAML.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
