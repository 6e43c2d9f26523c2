package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ucycle/pkg/cache"
	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/io"
	"github.com/matzehuels/ucycle/pkg/observability"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so goroutines may share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-artifact cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default scheme and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute constructs the cycle of order opts.N and verifies it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	start := time.Now()
	u, hit, err := r.ConstructWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("construct: %w", err)
	}
	result := &Result{N: opts.N, Cycle: u, CacheHit: hit}
	result.Stats.Length = len(u)
	result.Stats.ConstructTime = time.Since(start)
	logger.Info("constructed cycle", "n", opts.N, "length", len(u), "cached", hit, "duration", result.Stats.ConstructTime)

	start = time.Now()
	report, err := r.Verify(ctx, u, opts)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	result.Report = report
	result.Stats.VerifyTime = time.Since(start)
	logger.Info("verified cycle", "n", opts.N, "strategy", report.Strategy, "valid", report.Valid, "duration", result.Stats.VerifyTime)

	return result, nil
}

// ConstructWithCacheInfo returns the cycle of order opts.N and whether it came
// from the cache. Cached cycles are stored in the text encoding.
func (r *Runner) ConstructWithCacheInfo(ctx context.Context, opts Options) ([]int, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.CycleKey(opts.N)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if u, err := io.DecodeText(string(data)); err == nil && ucycle.IsUniversalCycle(u, opts.N) {
				observability.Cache().OnCacheHit(ctx, "cycle")
				return u, true, nil
			}
			r.logger(opts).Warn("discarding invalid cached cycle", "n", opts.N)
		} else if err != nil {
			r.logger(opts).Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "cycle")
	}

	hooks := observability.Cycle()
	hooks.OnConstructStart(ctx, opts.N)
	start := time.Now()
	u, err := ucycle.Construct(opts.N)
	hooks.OnConstructComplete(ctx, opts.N, len(u), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if text, err := io.EncodeText(u); err == nil {
		if err := r.Cache.Set(ctx, key, []byte(text), r.ttl(cache.TTLCycle)); err != nil {
			r.logger(opts).Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "cycle", len(text))
		}
	}
	return u, false, nil
}

// Construct is ConstructWithCacheInfo without the cache hit info.
func (r *Runner) Construct(ctx context.Context, opts Options) ([]int, error) {
	u, _, err := r.ConstructWithCacheInfo(ctx, opts)
	return u, err
}

// ControlSequence returns the σn/σn-1 choices for order opts.N, cached.
func (r *Runner) ControlSequence(ctx context.Context, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	key := r.Keyer.ControlKey(opts.N)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "control")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "control")
	}
	bits, err := ucycle.ControlSequence(opts.N)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, bits, r.ttl(cache.TTLControl)); err == nil {
		observability.Cache().OnCacheSet(ctx, "control", len(bits))
	}
	return bits, nil
}

// Verify checks u against order opts.N with the configured strategy. Reports
// are cached by cycle contents.
func (r *Runner) Verify(ctx context.Context, u []int, opts Options) (*ucycle.Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := opts.ParsedStrategy()
	key := r.Keyer.VerifyKey(opts.N, s.String(), u)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var report ucycle.Report
			if err := json.NewDecoder(bytes.NewReader(data)).Decode(&report); err == nil {
				observability.Cache().OnCacheHit(ctx, "verify")
				return &report, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "verify")
	}

	hooks := observability.Cycle()
	hooks.OnVerifyStart(ctx, opts.N, s.String())
	start := time.Now()
	report, err := ucycle.Verify(u, opts.N, s)
	valid := err == nil && report.Valid
	hooks.OnVerifyComplete(ctx, opts.N, s.String(), valid, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(report); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLVerify)); err == nil {
			observability.Cache().OnCacheSet(ctx, "verify", len(data))
		}
	}
	return report, nil
}

// RankResult is the rank of one permutation under one strategy.
type RankResult struct {
	Strategy ucycle.Strategy `json:"strategy"`
	Rank     uint64          `json:"rank"`
}

// RankAll ranks p under every strategy, in Strategies() order.
func (r *Runner) RankAll(p []int) ([]RankResult, error) {
	out := make([]RankResult, 0, len(ucycle.Strategies()))
	for _, s := range ucycle.Strategies() {
		rank, err := ucycle.Rank(s, p)
		if err != nil {
			return nil, err
		}
		out = append(out, RankResult{Strategy: s, Rank: rank})
	}
	return out, nil
}

// ConstructRange builds the cycles of orders lo..hi inclusive in parallel.
// Orders share no state; the first error cancels the rest.
func (r *Runner) ConstructRange(ctx context.Context, lo, hi int, opts Options) (map[int][]int, error) {
	if err := opts.SetDefaults(); err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty range %d..%d", lo, hi)
	}
	for _, n := range []int{lo, hi} {
		if err := errors.ValidateOrder(n, opts.MaxOrder); err != nil {
			return nil, err
		}
	}

	var (
		mu     sync.Mutex
		cycles = make(map[int][]int, hi-lo+1)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for n := lo; n <= hi; n++ {
		n := n
		g.Go(func() error {
			o := opts
			o.N = n
			o.validated = false
			u, err := r.Construct(gctx, o)
			if err != nil {
				return fmt.Errorf("n=%d: %w", n, err)
			}
			mu.Lock()
			cycles[n] = u
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cycles, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
