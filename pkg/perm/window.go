package perm

import "github.com/matzehuels/ucycle/pkg/errors"

// Window is a read-only circular view of size consecutive symbols of a
// sequence, starting at start. Indices past the end wrap to the front.
//
// A Window never copies the underlying sequence; callers must not mutate the
// sequence while a Window over it is in use.
type Window struct {
	seq   []int
	start int
	size  int
}

// NewWindow returns the circular window of size symbols of seq starting at
// start. start is reduced modulo len(seq).
func NewWindow(seq []int, start, size int) (Window, error) {
	if len(seq) == 0 {
		return Window{}, errors.New(errors.ErrCodeInvalidInput, "window over an empty sequence")
	}
	if size < 0 || size > len(seq) {
		return Window{}, errors.New(errors.ErrCodeInvalidInput, "window size %d over a sequence of length %d", size, len(seq))
	}
	start %= len(seq)
	if start < 0 {
		start += len(seq)
	}
	return Window{seq: seq, start: start, size: size}, nil
}

// Len returns the number of symbols in the window.
func (w Window) Len() int { return w.size }

// Start returns the index in the underlying sequence of the first symbol.
func (w Window) Start() int { return w.start }

// At returns the t-th symbol of the window, for 0 <= t < Len().
func (w Window) At(t int) int {
	return w.seq[(w.start+t)%len(w.seq)]
}

// AppendTo appends the window's symbols to dst and returns the extended slice.
func (w Window) AppendTo(dst []int) []int {
	for t := 0; t < w.size; t++ {
		dst = append(dst, w.At(t))
	}
	return dst
}

// Complete returns the permutation of {1..n} implied by the window: its n-1
// symbols followed by the missing one. The window must have length n-1.
func (w Window) Complete(n int) ([]int, error) {
	if w.size != n-1 {
		return nil, errors.New(errors.ErrCodeInvalidPermutation, "window length %d, want %d", w.size, n-1)
	}
	p := w.AppendTo(make([]int, 0, n))
	m, err := Missing(p, n)
	if err != nil {
		return nil, err
	}
	return append(p, m), nil
}
