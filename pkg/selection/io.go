package selection

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a selection as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip use.
func WriteJSON(sel Selection, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sel); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a selection from r. Indices are sorted and
// de-duplicated on the way in, so hand-written files need not be ordered.
func ReadJSON(r io.Reader) (Selection, error) {
	var sel Selection
	if err := json.NewDecoder(r).Decode(&sel); err != nil {
		return Selection{}, fmt.Errorf("decode: %w", err)
	}
	raw := sel.Indices
	sel.Indices = nil
	for _, v := range raw {
		sel.Indices.Add(v)
	}
	return sel, nil
}

// ExportJSON writes a selection to a JSON file at path.
func ExportJSON(sel Selection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(sel, f)
}

// ImportJSON reads a JSON file at path and returns the decoded selection.
func ImportJSON(path string) (Selection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Selection{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
