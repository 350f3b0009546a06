package piece

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a piece as indented JSON and writes it to w.
// The output carries the full geometry and can be re-imported with
// [ReadJSON].
func WriteJSON(p Piece, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a piece from r.
func ReadJSON(r io.Reader) (Piece, error) {
	var p Piece
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Piece{}, fmt.Errorf("decode: %w", err)
	}
	return p, nil
}

// ExportJSON writes a piece to a JSON file at path.
func ExportJSON(p Piece, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// ImportJSON reads a JSON file at path and returns the decoded piece.
func ImportJSON(path string) (Piece, error) {
	f, err := os.Open(path)
	if err != nil {
		return Piece{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
