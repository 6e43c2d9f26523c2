package perm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWindowWraps(t *testing.T) {
	seq := []int{3, 2, 1, 3, 1, 2}

	w, err := NewWindow(seq, 5, 2)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if w.Len() != 2 || w.Start() != 5 {
		t.Fatalf("window = (start %d, len %d), want (5, 2)", w.Start(), w.Len())
	}
	if w.At(0) != 2 || w.At(1) != 3 {
		t.Errorf("window symbols = %d,%d, want 2,3", w.At(0), w.At(1))
	}

	p, err := w.Complete(3)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if diff := cmp.Diff([]int{2, 3, 1}, p); diff != "" {
		t.Errorf("Complete mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowStartNormalized(t *testing.T) {
	seq := []int{1, 2, 3, 4}
	tests := []struct {
		start int
		want  int
	}{
		{0, 0},
		{4, 0},
		{9, 1},
		{-1, 3},
	}
	for _, tt := range tests {
		w, err := NewWindow(seq, tt.start, 2)
		if err != nil {
			t.Fatalf("NewWindow(start=%d): %v", tt.start, err)
		}
		if w.Start() != tt.want {
			t.Errorf("NewWindow(start=%d).Start() = %d, want %d", tt.start, w.Start(), tt.want)
		}
	}
}

func TestWindowErrors(t *testing.T) {
	if _, err := NewWindow(nil, 0, 0); err == nil {
		t.Error("NewWindow over empty sequence should fail")
	}
	if _, err := NewWindow([]int{1, 2}, 0, 3); err == nil {
		t.Error("NewWindow larger than sequence should fail")
	}

	w, _ := NewWindow([]int{1, 1, 2}, 0, 2)
	if _, err := w.Complete(3); err == nil {
		t.Error("Complete with a duplicate symbol should fail")
	}
	if _, err := w.Complete(4); err == nil {
		t.Error("Complete with the wrong order should fail")
	}
}

func TestWindowAppendTo(t *testing.T) {
	w, _ := NewWindow([]int{4, 3, 2, 1}, 3, 3)
	got := w.AppendTo([]int{9})
	if diff := cmp.Diff([]int{9, 1, 4, 3}, got); diff != "" {
		t.Errorf("AppendTo mismatch (-want +got):\n%s", diff)
	}
}
