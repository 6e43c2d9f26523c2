package ucycle

import (
	"fmt"

	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/perm"
)

// Report describes the outcome of verifying a candidate cycle.
type Report struct {
	N        int      `json:"n"`
	Strategy Strategy `json:"strategy"`
	Length   int      `json:"length"`
	Windows  uint64   `json:"windows"`             // windows ranked without conflict
	Valid    bool     `json:"valid"`               // every rank in [0, n!) hit exactly once
	FailedAt int      `json:"failed_at"`           // start index of the first bad window, -1 if none
	Reason   string   `json:"reason,omitempty"`
}

func (r *Report) fail(at int, format string, args ...any) *Report {
	r.Valid = false
	r.FailedAt = at
	r.Reason = fmt.Sprintf(format, args...)
	return r
}

// IsUniversalCycle reports whether u is a shorthand universal cycle for the
// permutations of {1..n}, using the canonical ranking strategy.
//
// By convention the one-symbol sequence [n] is accepted for n = 0 and n = 1.
func IsUniversalCycle(u []int, n int) bool {
	r, err := Verify(u, n, Canonical)
	return err == nil && r.Valid
}

// Verify walks every circular window of u, completes it with its missing
// symbol, ranks it with strategy s and checks that all n! ranks are hit
// exactly once.
//
// A malformed candidate (wrong length, a symbol outside [1,n], a repeated
// symbol inside a window, a repeated rank) is not an error: Verify returns a
// Report with Valid false and the reason. Errors are reserved for requests
// that cannot be evaluated at all: an unknown strategy, an order outside
// [0, perm.MaxOrder], or a seen-table that cannot be allocated.
func Verify(u []int, n int, s Strategy) (*Report, error) {
	ranker, err := NewRanker(s)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateOrder(n, perm.MaxOrder); err != nil {
		return nil, err
	}

	report := &Report{N: n, Strategy: s, Length: len(u), FailedAt: -1}
	if n < 2 {
		if len(u) != 1 || u[0] != n {
			return report.fail(0, "order %d admits only the cycle [%d]", n, n), nil
		}
		report.Windows = 1
		report.Valid = true
		return report, nil
	}

	total := perm.Factorial(n)
	if uint64(len(u)) != total {
		return report.fail(0, "length %d, want %d", len(u), total), nil
	}
	seen, err := allocate[bool](total, "seen table")
	if err != nil {
		return nil, err
	}

	buf := make([]int, 0, n)
	for i := range u {
		w, err := perm.NewWindow(u, i, n-1)
		if err != nil {
			return report.fail(i, "%s", errors.UserMessage(err)), nil
		}
		p := w.AppendTo(buf[:0])
		missing, err := perm.Missing(p, n)
		if err != nil {
			return report.fail(i, "invalid window: %s", errors.UserMessage(err)), nil
		}
		p = append(p, missing)

		rank, err := ranker.Rank(p)
		if err != nil {
			return report.fail(i, "rank: %s", errors.UserMessage(err)), nil
		}
		if rank >= total {
			return report.fail(i, "rank %d outside [0, %d)", rank, total), nil
		}
		if seen[rank] {
			return report.fail(i, "permutation %v (rank %d) repeats", p, rank), nil
		}
		seen[rank] = true
		report.Windows++
	}

	report.Valid = true
	return report, nil
}
