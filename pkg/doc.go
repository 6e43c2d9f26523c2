// Package pkg holds the libraries behind ucycle, a builder and checker for
// shorthand universal cycles of permutations.
//
// # Overview
//
// A shorthand universal cycle of order n is a cyclic sequence of n! symbols
// from {1..n} in which every window of n-1 consecutive symbols, completed by
// the one symbol it lacks, is a different permutation. The packages are
// layered bottom-up:
//
//  1. [perm] - permutation primitives, rotations and circular windows
//  2. [ucycle] - control sequence, construction, ranking and verification
//  3. [io] - text and JSON encodings of a cycle
//  4. [cache] - file, Redis and MongoDB caches for built cycles
//  5. [pipeline] - cached orchestration used by the CLI and the API
//
// [errors] and [observability] are shared by all of them.
//
// # Quick Start
//
//	u, err := ucycle.Construct(4)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ucycle.IsUniversalCycle(u, 4)) // true
//
//	r, _ := ucycle.Rank(ucycle.Lehmer, []int{4, 1, 3, 2}) // 19
//
// [perm]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/perm
// [ucycle]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/ucycle
// [io]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ucycle/pkg/observability
package pkg
