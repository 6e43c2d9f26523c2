package errors

import (
	"strings"
	"unicode"
)

// ValidateOrder validates the order n of a cycle request.
//
// The rules are:
//   - n must not be negative
//   - n must not exceed max (callers pass their own practical bound, and the
//     core passes 20 so that n! still fits a uint64)
//
// Orders 0 and 1 are valid: both describe the trivial one-symbol cycle.
func ValidateOrder(n, max int) error {
	if n < 0 {
		return New(ErrCodeOutOfRange, "order must not be negative, got %d", n)
	}
	if n > max {
		return New(ErrCodeOutOfRange, "order %d exceeds the supported maximum %d", n, max)
	}
	return nil
}

// ValidateSymbols checks that every symbol of seq lies in [1, n].
// It does not check distinctness, which only makes sense per window.
func ValidateSymbols(seq []int, n int) error {
	for i, x := range seq {
		if x < 1 || x > n {
			return New(ErrCodeInvalidPermutation, "symbol %d at index %d is outside [1,%d]", x, i, n)
		}
	}
	return nil
}

// ValidateCyclePath validates a path given on the command line for writing a
// cycle. It rejects empty names, control characters and null bytes.
func ValidateCyclePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
