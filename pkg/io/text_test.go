package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ucycle/pkg/errors"
)

func TestEncodeSymbol(t *testing.T) {
	tests := []struct {
		x    int
		want byte
	}{
		{1, '1'}, {9, '9'}, {0, '0'}, {10, 'A'}, {12, 'C'}, {20, 'K'}, {35, 'Z'},
	}
	for _, tt := range tests {
		got, err := EncodeSymbol(tt.x)
		if err != nil || got != tt.want {
			t.Errorf("EncodeSymbol(%d) = %q, %v; want %q", tt.x, got, err, tt.want)
		}
		back, err := DecodeSymbol(got)
		if err != nil || back != tt.x {
			t.Errorf("DecodeSymbol(%q) = %d, %v; want %d", got, back, err, tt.x)
		}
	}
	for _, x := range []int{-1, 36} {
		if _, err := EncodeSymbol(x); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("EncodeSymbol(%d) error = %v", x, err)
		}
	}
}

func TestDecodeSymbolLowercase(t *testing.T) {
	if x, err := DecodeSymbol('b'); err != nil || x != 11 {
		t.Errorf("DecodeSymbol('b') = %d, %v; want 11", x, err)
	}
}

func TestEncodeText(t *testing.T) {
	got, err := EncodeText([]int{12, 11, 10, 9, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got != "CBA91" {
		t.Errorf("EncodeText = %q, want %q", got, "CBA91")
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"321312", []int{3, 2, 1, 3, 1, 2}},
		{"  321312\n", []int{3, 2, 1, 3, 1, 2}},
		{"{3,2,1,3,1,2}", []int{3, 2, 1, 3, 1, 2}},
		{"[10, 9, 8]", []int{10, 9, 8}},
		{"3 2 1", []int{3, 2, 1}},
		{"CBA", []int{12, 11, 10}},
	}
	for _, tt := range tests {
		got, err := DecodeText(tt.in)
		if err != nil {
			t.Errorf("DecodeText(%q): %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("DecodeText(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestDecodeTextErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "32#1", "{}", "{1,x,3}"} {
		if _, err := DecodeText(in); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("DecodeText(%q) error = %v, want %s", in, err, errors.ErrCodeInvalidFormat)
		}
	}
}

func TestEncodeList(t *testing.T) {
	in := []int{3, 2, 1, 3, 1, 2}
	s := EncodeList(in)
	if s != "{3,2,1,3,1,2}" {
		t.Errorf("EncodeList = %q", s)
	}
	back, err := DecodeText(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadWriteText(t *testing.T) {
	var buf bytes.Buffer
	cycle := []int{4, 3, 2, 1, 4, 2, 1, 3}
	if err := WriteText(cycle, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "43214213\n" {
		t.Errorf("WriteText wrote %q", buf.String())
	}

	got, err := ReadText(strings.NewReader("\n\n" + buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cycle, got); diff != "" {
		t.Errorf("ReadText mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadText(strings.NewReader("\n \n")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadText(blank) error = %v", err)
	}
}

func TestImportExportText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.txt")
	cycle := []int{3, 2, 1, 3, 1, 2}
	if err := ExportText(cycle, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportText(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cycle, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := ImportText(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ImportText of a missing file should fail")
	}
}
