// Package perm provides permutation primitives over the symbols {1..n}.
//
// # Rotations
//
// The universal-cycle construction walks through all n! permutations using
// only two moves, both applied in place:
//
//   - RotateLeft (σn): the first symbol moves to the end.
//   - RotateLeftHoldLast (σn-1): the first symbol moves to the second-to-last
//     slot and the last symbol stays put.
//
// # Windows
//
// A shorthand universal cycle lists each permutation as n-1 consecutive
// symbols; the last symbol is implied. Window is a circular, non-owning view
// of such a run, and Missing/Complete recover the full permutation:
//
//	w, _ := perm.NewWindow([]int{3, 2, 1, 3, 1, 2}, 5, 2) // 2, 3
//	p, _ := w.Complete(3)                                 // [2 3 1]
//
// # Enumeration
//
// Generate lists permutations of {1..n} with Heap's algorithm; Factorial and
// CheckedFactorial size the space (n! fits a uint64 up to MaxOrder = 20).
package perm
