package perm

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ucycle/pkg/errors"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want uint64
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{8, 40320},
		{12, 479001600},
		{20, 2432902008176640000},
	}
	for _, tt := range tests {
		if got := Factorial(tt.n); got != tt.want {
			t.Errorf("Factorial(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestCheckedFactorial(t *testing.T) {
	if got, err := CheckedFactorial(MaxOrder); err != nil || got != Factorial(MaxOrder) {
		t.Errorf("CheckedFactorial(%d) = %d, %v", MaxOrder, got, err)
	}
	for _, n := range []int{-1, MaxOrder + 1, 64} {
		_, err := CheckedFactorial(n)
		if !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("CheckedFactorial(%d) error = %v, want %s", n, err, errors.ErrCodeOutOfRange)
		}
	}
}

func TestIdentityAndDescending(t *testing.T) {
	if diff := cmp.Diff([]int{1, 2, 3, 4}, Identity(4)); diff != "" {
		t.Errorf("Identity(4) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 3, 2, 1}, Descending(4)); diff != "" {
		t.Errorf("Descending(4) mismatch (-want +got):\n%s", diff)
	}
	if got := Identity(-1); len(got) != 0 {
		t.Errorf("Identity(-1) = %v, want empty", got)
	}
}

func TestRotateLeft(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
	}{
		{nil, nil},
		{[]int{1}, []int{1}},
		{[]int{2, 1}, []int{1, 2}},
		{[]int{3, 2, 1}, []int{2, 1, 3}},
		{[]int{4, 3, 2, 1}, []int{3, 2, 1, 4}},
	}
	for _, tt := range tests {
		got := append([]int(nil), tt.in...)
		RotateLeft(got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("RotateLeft(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRotateLeftHoldLast(t *testing.T) {
	tests := []struct {
		in   []int
		want []int
	}{
		{[]int{1}, []int{1}},
		{[]int{2, 1}, []int{2, 1}},
		{[]int{1, 3, 2}, []int{3, 1, 2}},
		{[]int{4, 3, 2, 1}, []int{3, 2, 4, 1}},
	}
	for _, tt := range tests {
		got := append([]int(nil), tt.in...)
		RotateLeftHoldLast(got)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("RotateLeftHoldLast(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       []int
		n       int
		wantErr bool
	}{
		{"identity", []int{1, 2, 3}, 3, false},
		{"shuffled", []int{3, 1, 2}, 3, false},
		{"empty", nil, 0, false},
		{"short", []int{1, 2}, 3, true},
		{"long", []int{1, 2, 3, 4}, 3, true},
		{"zero", []int{0, 1, 2}, 3, true},
		{"too large", []int{1, 2, 4}, 3, true},
		{"duplicate", []int{1, 1, 3}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.p, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%v, %d) error = %v, wantErr %v", tt.p, tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidPermutation) {
				t.Errorf("Validate(%v, %d) code = %s", tt.p, tt.n, errors.GetCode(err))
			}
		})
	}
}

func TestMissing(t *testing.T) {
	tests := []struct {
		w       []int
		n       int
		want    int
		wantErr bool
	}{
		{[]int{3, 2}, 3, 1, false},
		{[]int{2, 3}, 3, 1, false},
		{[]int{1, 3}, 3, 2, false},
		{[]int{4, 1, 3}, 4, 2, false},
		{[]int{}, 1, 1, false},
		{[]int{2, 2}, 3, 0, true},
		{[]int{4, 1}, 3, 0, true},
		{[]int{1, 2, 3}, 3, 0, true},
		{[]int{}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.w, tt.n), func(t *testing.T) {
			got, err := Missing(tt.w, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Missing(%v, %d) error = %v, wantErr %v", tt.w, tt.n, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Missing(%v, %d) = %d, want %d", tt.w, tt.n, got, tt.want)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	w := []int{4, 1, 3}
	got, err := Complete(w, 4)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if diff := cmp.Diff([]int{4, 1, 3, 2}, got); diff != "" {
		t.Errorf("Complete mismatch (-want +got):\n%s", diff)
	}
	got[0] = 99
	if w[0] != 4 {
		t.Error("Complete must not alias its input")
	}
}

func TestGenerate(t *testing.T) {
	for n := 0; n <= 6; n++ {
		perms := Generate(n, -1)
		if uint64(len(perms)) != Factorial(n) {
			t.Fatalf("Generate(%d) returned %d permutations, want %d", n, len(perms), Factorial(n))
		}
		seen := make(map[string]bool, len(perms))
		for _, p := range perms {
			if err := Validate(p, n); err != nil {
				t.Fatalf("Generate(%d) produced %v: %v", n, p, err)
			}
			key := fmt.Sprint(p)
			if seen[key] {
				t.Fatalf("Generate(%d) produced %v twice", n, p)
			}
			seen[key] = true
		}
	}
}

func TestGenerateLimit(t *testing.T) {
	if got := len(Generate(9, 7)); got != 7 {
		t.Errorf("len(Generate(9, 7)) = %d, want 7", got)
	}
}
