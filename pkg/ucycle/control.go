package ucycle

import (
	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/perm"
)

// ControlSequence returns the bit string S_n that drives Construct: n! bits,
// where S_n[i] == 0 selects σn and 1 selects σn-1 at step i.
//
// The generator is loopless. It keeps an offset a[j], a direction d[j] and a
// focus pointer f[j] per position j in 1..n+1; each step pops j = f[1], emits
// one bit and, when a[j] hits 0 or n-j, reverses d[j] and splices j out of
// the focus chain. Generation stops after the step that pops j >= n.
//
// Orders below 2 have no control sequence and return OUT_OF_RANGE, as do
// orders above perm.MaxOrder. An O(n!) buffer that cannot be allocated yields
// ALLOCATION_FAILED.
func ControlSequence(n int) ([]byte, error) {
	if n < 2 {
		return nil, errors.New(errors.ErrCodeOutOfRange, "control sequence needs n >= 2, got %d", n)
	}
	total, err := perm.CheckedFactorial(n)
	if err != nil {
		return nil, err
	}
	bits, err := allocate[byte](total, "control sequence")
	if err != nil {
		return nil, err
	}

	// f[j+1] is written for j = n+1, so the arrays reach index n+2.
	a := make([]int, n+3)
	d := make([]int, n+3)
	f := make([]int, n+3)
	for i := 1; i < n; i++ {
		d[i] = 1
		f[i] = i
	}
	d[n] = 1
	f[n] = n + 1
	// d[n+1] is read when j = n+1 is popped; it must be defined.
	d[n+1] = 1

	var k uint64
	for {
		j := f[1]
		f[1] = 1

		if k == total {
			return nil, errors.New(errors.ErrCodeInternal, "control sequence for n=%d overran %d bits", n, total)
		}
		diff := a[j] - d[j]
		if (j%2 == 0) != (diff <= 0 || diff >= n-j) {
			bits[k] = 0
		} else {
			bits[k] = 1
		}
		k++

		a[j] += d[j]
		if a[j] == 0 || a[j] == n-j {
			d[j] = -d[j]
			f[j] = f[j+1]
			f[j+1] = j + 1
		}
		if j >= n {
			break
		}
	}

	if k != total {
		return nil, errors.New(errors.ErrCodeInternal, "control sequence for n=%d has %d bits, want %d", n, k, total)
	}
	return bits, nil
}
