// Package jsonfile reads and writes the catalog's JSON curation files.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrNotFound  = errors.New("file not found")
	ErrMalformed = errors.New("invalid JSON")
)

// ReadFile reads path, mapping a missing file to ErrNotFound.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

// LoadObject reads a file holding one JSON object, keeping its key order.
func LoadObject(path string) (*Object, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	obj := NewObject()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return obj, nil
}

// LoadList reads a file holding a JSON array of objects.
func LoadList(path string) ([]*Object, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []*Object
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	for i, obj := range list {
		if obj == nil {
			return nil, fmt.Errorf("%w: %s: entry %d is null, expected an object", ErrMalformed, path, i)
		}
	}
	return list, nil
}

// Save writes v as UTF-8 JSON with 2-space indentation.
func Save(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal renders v the way Save writes it.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
