package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ucycle/pkg/errors"
)

// Document is the JSON form of a cycle.
type Document struct {
	N        int    `json:"n"`
	Length   int    `json:"length"`
	Strategy string `json:"strategy,omitempty"`
	Symbols  string `json:"symbols"`
}

// NewDocument encodes cycle as a Document for order n.
func NewDocument(cycle []int, n int, strategy string) (*Document, error) {
	symbols, err := EncodeText(cycle)
	if err != nil {
		return nil, err
	}
	return &Document{N: n, Length: len(cycle), Strategy: strategy, Symbols: symbols}, nil
}

// Cycle decodes the document's symbols and checks them against Length.
func (d *Document) Cycle() ([]int, error) {
	cycle, err := DecodeText(d.Symbols)
	if err != nil {
		return nil, err
	}
	if len(cycle) != d.Length {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document declares length %d but holds %d symbols", d.Length, len(cycle))
	}
	return cycle, nil
}

// WriteJSON encodes a cycle of order n as an indented JSON document.
// This format can be re-imported with [ReadJSON].
func WriteJSON(cycle []int, n int, strategy string, w io.Writer) error {
	doc, err := NewDocument(cycle, n, strategy)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON document from r and returns its cycle and order.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]int, int, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	cycle, err := doc.Cycle()
	if err != nil {
		return nil, 0, err
	}
	return cycle, doc.N, nil
}

// ImportJSON reads a JSON document from the file at path.
func ImportJSON(path string) ([]int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a JSON document to the file at path.
func ExportJSON(cycle []int, n int, strategy string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(cycle, n, strategy, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
