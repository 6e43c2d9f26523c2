package ucycle

import (
	"slices"
	"strings"

	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/perm"
)

// Strategy selects one of the three ranking algorithms.
//
// Every strategy is a bijection from the permutations of {1..n} onto
// [0, n!); they differ in the order they induce. RuskeyWilliams is the
// zero value and the canonical order of Construct.
type Strategy int

const (
	// RuskeyWilliams splits π = α·n·β and recurses on σ(β)·α.
	RuskeyWilliams Strategy = iota
	// Lehmer is the lexicographic rank Σ c_i·(n-1-i)!.
	Lehmer
	// SevenOrder removes n from π and recurses (Holroyd–Ruskey–Williams).
	SevenOrder
)

// Canonical is the strategy under which window i of Construct(n) ranks to i.
const Canonical = RuskeyWilliams

var strategyNames = map[Strategy]string{
	RuskeyWilliams: "ruskey-williams",
	Lehmer:         "lehmer",
	SevenOrder:     "7-order",
}

var strategyAliases = map[string]Strategy{
	"ruskey-williams": RuskeyWilliams,
	"rw":              RuskeyWilliams,
	"lehmer":          Lehmer,
	"lex":             Lehmer,
	"7-order":         SevenOrder,
	"7order":          SevenOrder,
	"seven-order":     SevenOrder,
	"hrw":             SevenOrder,
}

// String returns the strategy's canonical name.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy parses a strategy name. It accepts the canonical names plus
// the short aliases rw, lex, 7order, seven-order and hrw, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	if s, ok := strategyAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidStrategy, "unknown ranking strategy %q", name)
}

// Strategies returns all strategies, canonical first.
func Strategies() []Strategy {
	return []Strategy{RuskeyWilliams, Lehmer, SevenOrder}
}

// Ranker maps permutations of {1..n} to ranks in [0, n!) and back.
type Ranker interface {
	// Rank returns the rank of p, or INVALID_PERMUTATION if p is not a
	// permutation of {1..len(p)}.
	Rank(p []int) (uint64, error)

	// Unrank returns the permutation of {1..n} with rank r, or OUT_OF_RANGE
	// if r >= n! or n is unsupported.
	Unrank(n int, r uint64) ([]int, error)

	// Strategy reports which algorithm the ranker implements.
	Strategy() Strategy
}

// NewRanker returns the Ranker for s.
func NewRanker(s Strategy) (Ranker, error) {
	switch s {
	case RuskeyWilliams:
		return RuskeyWilliamsRanker{}, nil
	case Lehmer:
		return LehmerRanker{}, nil
	case SevenOrder:
		return SevenOrderRanker{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %d", int(s))
}

// Rank ranks p with strategy s.
func Rank(s Strategy, p []int) (uint64, error) {
	r, err := NewRanker(s)
	if err != nil {
		return 0, err
	}
	return r.Rank(p)
}

// RankWindow completes the window w of n-1 symbols with its missing symbol
// and ranks the resulting permutation with strategy s.
func RankWindow(s Strategy, w perm.Window, n int) (uint64, error) {
	p, err := w.Complete(n)
	if err != nil {
		return 0, err
	}
	return Rank(s, p)
}

// checkPermutation validates p against its own length, which is also the
// largest symbol it must hold.
func checkPermutation(p []int) error {
	if len(p) > perm.MaxOrder {
		return errors.New(errors.ErrCodeOutOfRange, "permutation of length %d exceeds %d", len(p), perm.MaxOrder)
	}
	return perm.Validate(p, len(p))
}

// checkRank validates an unrank request.
func checkRank(n int, r uint64) error {
	total, err := perm.CheckedFactorial(n)
	if err != nil {
		return err
	}
	if r >= total {
		return errors.New(errors.ErrCodeOutOfRange, "rank %d outside [0, %d)", r, total)
	}
	return nil
}

// =============================================================================
// Lehmer
// =============================================================================

// LehmerRanker ranks permutations in lexicographic order.
type LehmerRanker struct{}

// Strategy returns Lehmer.
func (LehmerRanker) Strategy() Strategy { return Lehmer }

// Rank returns Σ c_i·(n-1-i)!, where c_i counts the entries right of
// position i that are smaller than p[i].
func (LehmerRanker) Rank(p []int) (uint64, error) {
	if err := checkPermutation(p); err != nil {
		return 0, err
	}
	n := len(p)
	var rank uint64
	for i := 0; i < n; i++ {
		var smaller uint64
		for j := i + 1; j < n; j++ {
			if p[j] < p[i] {
				smaller++
			}
		}
		rank += smaller * perm.Factorial(n-1-i)
	}
	return rank, nil
}

// Unrank decodes r as a factorial-base number, picking the c_i-th smallest
// unused symbol at each position.
func (LehmerRanker) Unrank(n int, r uint64) ([]int, error) {
	if err := checkRank(n, r); err != nil {
		return nil, err
	}
	avail := perm.Identity(n)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		f := perm.Factorial(n - 1 - i)
		c := int(r / f)
		r %= f
		out = append(out, avail[c])
		avail = slices.Delete(avail, c, c+1)
	}
	return out, nil
}

// =============================================================================
// Ruskey–Williams
// =============================================================================

// RuskeyWilliamsRanker ranks permutations in the order in which Construct
// lists them: window i of the cycle has rank i.
type RuskeyWilliamsRanker struct{}

// Strategy returns RuskeyWilliams.
func (RuskeyWilliamsRanker) Strategy() Strategy { return RuskeyWilliams }

// Rank writes p as α·n·β. With α empty the rank is n·rank(β); otherwise it
// is (n-pos) + n·rank(σ(β)·α), where σ(β) is β rotated right by one and pos
// is the index of n.
func (RuskeyWilliamsRanker) Rank(p []int) (uint64, error) {
	if err := checkPermutation(p); err != nil {
		return 0, err
	}
	return rankRuskeyWilliams(p), nil
}

func rankRuskeyWilliams(p []int) uint64 {
	n := len(p)
	if n <= 1 {
		return 0
	}
	pos := slices.Index(p, n)
	if pos == 0 {
		return uint64(n) * rankRuskeyWilliams(p[1:])
	}

	alpha, beta := p[:pos], p[pos+1:]
	gamma := make([]int, 0, n-1)
	if len(beta) > 0 {
		gamma = append(gamma, beta[len(beta)-1])
		gamma = append(gamma, beta[:len(beta)-1]...)
	}
	gamma = append(gamma, alpha...)
	return uint64(n-pos) + uint64(n)*rankRuskeyWilliams(gamma)
}

// Unrank inverts Rank: r mod n locates n, r div n ranks σ(β)·α.
func (RuskeyWilliamsRanker) Unrank(n int, r uint64) ([]int, error) {
	if err := checkRank(n, r); err != nil {
		return nil, err
	}
	return unrankRuskeyWilliams(n, r), nil
}

func unrankRuskeyWilliams(n int, r uint64) []int {
	if n <= 1 {
		return perm.Identity(n)
	}
	q := int(r % uint64(n))
	gamma := unrankRuskeyWilliams(n-1, r/uint64(n))
	out := make([]int, 0, n)
	if q == 0 {
		return append(append(out, n), gamma...)
	}

	pos := n - q
	lenBeta := n - 1 - pos
	rotated, alpha := gamma[:lenBeta], gamma[lenBeta:]
	out = append(out, alpha...)
	out = append(out, n)
	if lenBeta > 0 {
		out = append(out, rotated[1:]...)
		out = append(out, rotated[0])
	}
	return out
}

// =============================================================================
// 7-order (Holroyd–Ruskey–Williams)
// =============================================================================

// SevenOrderRanker ranks permutations by the position of their maximum.
type SevenOrderRanker struct{}

// Strategy returns SevenOrder.
func (SevenOrderRanker) Strategy() Strategy { return SevenOrder }

// Rank returns n·rank(tail) when n leads p, and otherwise
// (n-pos) + n·rank(p with n removed).
func (SevenOrderRanker) Rank(p []int) (uint64, error) {
	if err := checkPermutation(p); err != nil {
		return 0, err
	}
	return rankSevenOrder(p), nil
}

func rankSevenOrder(p []int) uint64 {
	n := len(p)
	if n <= 1 {
		return 0
	}
	pos := slices.Index(p, n)
	if pos == 0 {
		return uint64(n) * rankSevenOrder(p[1:])
	}
	gamma := make([]int, 0, n-1)
	gamma = append(gamma, p[:pos]...)
	gamma = append(gamma, p[pos+1:]...)
	return uint64(n-pos) + uint64(n)*rankSevenOrder(gamma)
}

// Unrank inverts Rank by reinserting n at position (n - r mod n) mod n.
func (SevenOrderRanker) Unrank(n int, r uint64) ([]int, error) {
	if err := checkRank(n, r); err != nil {
		return nil, err
	}
	return unrankSevenOrder(n, r), nil
}

func unrankSevenOrder(n int, r uint64) []int {
	if n <= 1 {
		return perm.Identity(n)
	}
	q := int(r % uint64(n))
	gamma := unrankSevenOrder(n-1, r/uint64(n))
	pos := 0
	if q != 0 {
		pos = n - q
	}
	out := make([]int, 0, n)
	out = append(out, gamma[:pos]...)
	out = append(out, n)
	return append(out, gamma[pos:]...)
}

var (
	_ Ranker = LehmerRanker{}
	_ Ranker = RuskeyWilliamsRanker{}
	_ Ranker = SevenOrderRanker{}
)
