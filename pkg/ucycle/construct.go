package ucycle

import (
	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/perm"
)

// Move is the rotation applied after a step of the construction.
type Move byte

const (
	// Sigma rotates the whole permutation left by one (σn).
	Sigma Move = iota
	// SigmaHold rotates all but the last symbol left by one (σn-1).
	SigmaHold
)

// String returns the conventional name of the rotation.
func (m Move) String() string {
	if m == SigmaHold {
		return "σn-1"
	}
	return "σn"
}

// Walk drives a permutation buffer through the n! steps of the construction.
//
// At step i, fn receives the current permutation (owned by Walk, valid only
// during the call) and the move that follows it. The permutation's first
// symbol is U[i]. Returning false from fn stops the walk early without error.
//
// Walk starts from (n, n-1, ..., 1) and requires 2 <= n <= perm.MaxOrder.
func Walk(n int, fn func(step uint64, p []int, next Move) bool) error {
	bits, err := ControlSequence(n)
	if err != nil {
		return err
	}
	p := perm.Descending(n)
	for i, b := range bits {
		next := Move(b)
		if !fn(uint64(i), p, next) {
			return nil
		}
		if next == Sigma {
			perm.RotateLeft(p)
		} else {
			perm.RotateLeftHoldLast(p)
		}
	}
	return nil
}

// Construct returns the shorthand universal cycle for the permutations of
// {1..n}: n! symbols such that every circular window of n-1 symbols, completed
// with its missing symbol, is a distinct permutation.
//
// By convention n = 0 and n = 1 both yield the one-symbol cycle [n]. Orders
// outside [0, perm.MaxOrder] return OUT_OF_RANGE before any work is done, and
// a cycle buffer that cannot be allocated returns ALLOCATION_FAILED. Construct
// never returns a partially filled cycle.
//
// Window i of the result ranks to exactly i under the Ruskey–Williams order.
func Construct(n int) ([]int, error) {
	if err := errors.ValidateOrder(n, perm.MaxOrder); err != nil {
		return nil, err
	}
	if n < 2 {
		return []int{n}, nil
	}

	cycle, err := allocate[int](perm.Factorial(n), "universal cycle")
	if err != nil {
		return nil, err
	}
	err = Walk(n, func(i uint64, p []int, _ Move) bool {
		cycle[i] = p[0]
		return true
	})
	if err != nil {
		return nil, err
	}
	return cycle, nil
}

// SymbolAt returns U[i] for the cycle Construct(n) would build, without
// materializing it. It unranks i in the Ruskey–Williams order and returns the
// first symbol of that permutation, in O(n²) time.
func SymbolAt(n int, i uint64) (int, error) {
	p, err := PermutationAt(n, i)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// PermutationAt returns the permutation whose window starts at index i of
// Construct(n): U[i..i+n-2] followed by the missing symbol.
func PermutationAt(n int, i uint64) ([]int, error) {
	if err := errors.ValidateOrder(n, perm.MaxOrder); err != nil {
		return nil, err
	}
	if n < 2 {
		if i != 0 {
			return nil, errors.New(errors.ErrCodeOutOfRange, "index %d outside a cycle of length 1", i)
		}
		return []int{n}, nil
	}
	return RuskeyWilliamsRanker{}.Unrank(n, i)
}
