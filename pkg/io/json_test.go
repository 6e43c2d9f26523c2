package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ucycle/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON([]int{3, 2, 1, 3, 1, 2}, 3, "ruskey-williams", &buf); err != nil {
		t.Fatal(err)
	}
	want := `{
  "n": 3,
  "length": 6,
  "strategy": "ruskey-williams",
  "symbols": "321312"
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSON(t *testing.T) {
	cycle, n, err := ReadJSON(strings.NewReader(`{"n":2,"length":2,"symbols":"21"}`))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if diff := cmp.Diff([]int{2, 1}, cycle); diff != "" {
		t.Errorf("cycle mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"n":`},
		{"length mismatch", `{"n":3,"length":5,"symbols":"321312"}`},
		{"bad symbol", `{"n":3,"length":3,"symbols":"3?1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ReadJSON(strings.NewReader(tt.in)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestImportExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.json")
	cycle := []int{4, 3, 2, 1, 4, 2, 1, 3, 4, 1, 3, 2, 4, 3, 1, 2, 4, 1, 2, 3, 4, 2, 3, 1}
	if err := ExportJSON(cycle, 4, "", path); err != nil {
		t.Fatal(err)
	}
	got, n, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("n = %d, want 4", n)
	}
	if diff := cmp.Diff(cycle, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDocumentRejectsUnencodable(t *testing.T) {
	if _, err := NewDocument([]int{1, 40}, 40, ""); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v", err)
	}
}
