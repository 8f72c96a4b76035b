package clix

import (
	"fmt"

	"github.com/indaco/storever/internal/printer"
	"github.com/tidwall/sjson"
)

// JSONDoc builds a JSON object field by field with sjson. The first error
// sticks and is reported by String.
type JSONDoc struct {
	raw string
	err error
}

// NewJSONDoc returns an empty object.
func NewJSONDoc() *JSONDoc {
	return &JSONDoc{raw: "{}"}
}

// Set stores value at the sjson path. A nil value is written as null.
func (d *JSONDoc) Set(path string, value any) *JSONDoc {
	if d.err != nil {
		return d
	}
	d.raw, d.err = sjson.Set(d.raw, path, value)
	return d
}

// SetIf stores value only when cond holds.
func (d *JSONDoc) SetIf(cond bool, path string, value any) *JSONDoc {
	if !cond {
		return d
	}
	return d.Set(path, value)
}

// Append adds the object built by elem to the array at path. The array must
// already exist.
func (d *JSONDoc) Append(path string, elem *JSONDoc) *JSONDoc {
	if d.err != nil {
		return d
	}
	raw, err := elem.String()
	if err != nil {
		d.err = err
		return d
	}
	d.raw, d.err = sjson.SetRaw(d.raw, path+".-1", raw)
	return d
}

// String returns the encoded document.
func (d *JSONDoc) String() (string, error) {
	if d.err != nil {
		return "", fmt.Errorf("failed to encode output: %w", d.err)
	}
	return d.raw, nil
}

// Print writes the document on its own line.
func (d *JSONDoc) Print() error {
	raw, err := d.String()
	if err != nil {
		return err
	}
	printer.PrintPlain(raw)
	return nil
}
