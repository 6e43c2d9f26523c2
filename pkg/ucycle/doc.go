// Package ucycle constructs, indexes, ranks and verifies shorthand universal
// cycles for the permutations of {1..n}.
//
// A shorthand universal cycle U has length n!. Every circular window of n-1
// consecutive symbols holds n-1 distinct values; appending the missing value
// gives a permutation, and each permutation of {1..n} arises from exactly one
// window. For n = 3:
//
//	3 2 1 3 1 2   windows: 32|1 21|3 13|2 31|2 12|3 23|1
//
// # Construction
//
// ControlSequence produces the bit string S_n with a loopless generator.
// Construct starts from (n, n-1, ..., 1) and at each step records the first
// symbol, then applies σn (bit 0) or σn-1 (bit 1). Walk exposes the same
// traversal one permutation at a time.
//
// # Ranking
//
// Three strategies map permutations to [0, n!):
//
//   - RuskeyWilliams: the order Construct produces; window i ranks to i.
//   - Lehmer: lexicographic order.
//   - SevenOrder: the Holroyd–Ruskey–Williams position-of-maximum order.
//
// All three are bijections and interchangeable for verification, but they
// induce different orders. Because RuskeyWilliams is invertible in O(n²),
// SymbolAt and PermutationAt index the cycle without building it.
//
// # Verification
//
// Verify ranks each window and checks that no rank repeats; with n! windows
// and n! ranks that is equivalent to full coverage. IsUniversalCycle is the
// boolean form with the canonical strategy.
//
// # Errors
//
// Errors carry codes from pkg/errors: OUT_OF_RANGE for unsupported orders or
// ranks, INVALID_PERMUTATION for malformed inputs to Rank, ALLOCATION_FAILED
// when an O(n!) buffer cannot be acquired. No function returns a partial
// result alongside an error.
package ucycle
