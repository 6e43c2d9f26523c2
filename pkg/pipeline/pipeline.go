// Package pipeline runs cycle construction and verification with caching.
//
// The CLI and the HTTP server share a [Runner] so both serve the same cached
// cycles and agree on defaults and validation.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{N: 6})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.Valid) // true
//
// Build several orders at once:
//
//	cycles, err := runner.ConstructRange(ctx, 2, 9, pipeline.Options{})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ucycle/pkg/errors"
	"github.com/matzehuels/ucycle/pkg/perm"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxOrder bounds the order a Runner will construct. 10! symbols
	// take about 29 MiB as []int; 12! would need several GiB.
	DefaultMaxOrder = 10

	// HardMaxOrder is the largest order any configuration may allow.
	HardMaxOrder = perm.MaxOrder
)

// DefaultStrategy is the strategy used when Options.Strategy is empty.
const DefaultStrategy = ucycle.Canonical

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	N        int    `json:"n"`
	Strategy string `json:"strategy,omitempty"`
	MaxOrder int    `json:"max_order,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"` // bypass cached results

	Logger *log.Logger `json:"-"`

	strategy  ucycle.Strategy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	N        int
	Cycle    []int
	Report   *ucycle.Report
	Stats    Stats
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Length        int
	ConstructTime time.Duration
	VerifyTime    time.Duration
}

// ValidateAndSetDefaults checks the order and strategy and fills defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.SetDefaults(); err != nil {
		return err
	}
	if err := errors.ValidateOrder(o.N, o.MaxOrder); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults applies the default max order and strategy without checking N.
func (o *Options) SetDefaults() error {
	if o.MaxOrder == 0 {
		o.MaxOrder = DefaultMaxOrder
	}
	if o.MaxOrder < 0 || o.MaxOrder > HardMaxOrder {
		return errors.New(errors.ErrCodeInvalidInput, "max order %d outside [0, %d]", o.MaxOrder, HardMaxOrder)
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy.String()
	}
	s, err := ucycle.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	o.strategy = s
	o.Strategy = s.String()
	return nil
}

// ParsedStrategy returns the strategy resolved by SetDefaults.
func (o *Options) ParsedStrategy() ucycle.Strategy {
	return o.strategy
}
