package perm

import (
	"slices"

	"github.com/matzehuels/ucycle/pkg/errors"
)

// MaxOrder is the largest n for which n! fits in a uint64 (20! ≈ 2.4e18).
const MaxOrder = 20

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// The result wraps silently above MaxOrder; use CheckedFactorial at entry
// points that accept n from callers.
func Factorial(n int) uint64 {
	var result uint64 = 1
	for i := 2; i <= n; i++ {
		result *= uint64(i)
	}
	return result
}

// CheckedFactorial returns n! or an OUT_OF_RANGE error when n is negative or
// n! does not fit in a uint64.
func CheckedFactorial(n int) (uint64, error) {
	if err := errors.ValidateOrder(n, MaxOrder); err != nil {
		return 0, err
	}
	return Factorial(n), nil
}

// Identity returns the permutation [1, 2, ..., n].
// For n <= 0, Identity returns an empty slice.
func Identity(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i + 1
	}
	return result
}

// Descending returns the permutation [n, n-1, ..., 1].
func Descending(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = n - i
	}
	return result
}

// RotateLeft rotates p left by one position in place: the first element moves
// to the end. This is the rotation σn.
func RotateLeft(p []int) {
	if len(p) < 2 {
		return
	}
	first := p[0]
	copy(p, p[1:])
	p[len(p)-1] = first
}

// RotateLeftHoldLast rotates all but the last element of p left by one
// position in place; the last element stays fixed. This is the rotation σn-1.
func RotateLeftHoldLast(p []int) {
	if len(p) < 2 {
		return
	}
	RotateLeft(p[:len(p)-1])
}

// Validate reports whether p is a permutation of {1..n}.
//
// The returned error has code INVALID_PERMUTATION and names the first
// offending position: wrong length, a symbol outside [1,n], or a repeat.
func Validate(p []int, n int) error {
	if len(p) != n {
		return errors.New(errors.ErrCodeInvalidPermutation, "length %d, want %d", len(p), n)
	}
	seen := make([]bool, n+1)
	for i, x := range p {
		if x < 1 || x > n {
			return errors.New(errors.ErrCodeInvalidPermutation, "symbol %d at position %d is outside [1,%d]", x, i, n)
		}
		if seen[x] {
			return errors.New(errors.ErrCodeInvalidPermutation, "duplicate symbol %d at position %d", x, i)
		}
		seen[x] = true
	}
	return nil
}

// Missing returns the one symbol of {1..n} absent from the window w, which
// must hold n-1 distinct symbols from [1,n].
//
// The missing symbol is n(n+1)/2 minus the window sum.
func Missing(w []int, n int) (int, error) {
	if n < 1 || len(w) != n-1 {
		return 0, errors.New(errors.ErrCodeInvalidPermutation, "window length %d, want %d", len(w), n-1)
	}
	seen := make([]bool, n+1)
	sum := 0
	for i, x := range w {
		if x < 1 || x > n {
			return 0, errors.New(errors.ErrCodeInvalidPermutation, "symbol %d at position %d is outside [1,%d]", x, i, n)
		}
		if seen[x] {
			return 0, errors.New(errors.ErrCodeInvalidPermutation, "duplicate symbol %d at position %d", x, i)
		}
		seen[x] = true
		sum += x
	}
	return n*(n+1)/2 - sum, nil
}

// Complete returns a new permutation made of the window w followed by its
// missing symbol.
func Complete(w []int, n int) ([]int, error) {
	m, err := Missing(w, n)
	if err != nil {
		return nil, err
	}
	p := make([]int, 0, n)
	p = append(p, w...)
	return append(p, m), nil
}

// Generate returns permutations of [1, 2, ..., n] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
// Generate handles edge cases gracefully:
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[1]] (one single-element permutation)
//
// For n >= 11, the number of permutations runs into the tens of millions.
// Always use a limit when n is large.
func Generate(n, limit int) [][]int {
	if n <= 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{1}}
	}

	p := Identity(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 10 {
		capacity = int(Factorial(min(n, 10)))
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(p))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			result = append(result, slices.Clone(p))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}
