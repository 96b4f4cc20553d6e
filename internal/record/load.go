package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dom/hero-builds/internal/jsonfile"
)

// Load reads a file holding a single JSON object.
func Load(path string) (Record, error) {
	data, err := jsonfile.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := decode(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", jsonfile.ErrMalformed, path, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s: expected an object", jsonfile.ErrMalformed, path)
	}
	return rec, nil
}

// LoadList reads a file holding a JSON array of objects.
func LoadList(path string) ([]Record, error) {
	data, err := jsonfile.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var recs []Record
	if err := decode(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %s: expected an array of objects: %v", jsonfile.ErrMalformed, path, err)
	}
	return recs, nil
}

// LoadAny reads a file holding either one object or an array of objects.
func LoadAny(path string) ([]Record, bool, error) {
	data, err := jsonfile.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []Record
		if err := decode(trimmed, &recs); err != nil {
			return nil, true, fmt.Errorf("%w: %s: %v", jsonfile.ErrMalformed, path, err)
		}
		return recs, true, nil
	}

	var rec Record
	if err := decode(trimmed, &rec); err != nil || rec == nil {
		return nil, false, fmt.Errorf("%w: %s: expected an object or array", jsonfile.ErrMalformed, path)
	}
	return []Record{rec}, false, nil
}

// Decode converts a record into a typed value, typically after validation.
func Decode(rec Record, v any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
