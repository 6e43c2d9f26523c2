package ucycle

import (
	"fmt"
	"math"

	"github.com/matzehuels/ucycle/pkg/errors"
)

// allocate returns a zeroed buffer of size elements, or an ALLOCATION_FAILED
// error when the runtime cannot provide it. A failed allocation never yields a
// partially usable buffer.
func allocate[T any](size uint64, what string) (buf []T, err error) {
	if size > math.MaxInt {
		return nil, errors.New(errors.ErrCodeAllocation, "%s: %d elements exceed the address space", what, size)
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrap(errors.ErrCodeAllocation, fmt.Errorf("%v", r), "%s: %d elements", what, size)
		}
	}()
	return make([]T, size), nil
}
