package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/errors"
	pkgio "github.com/matzehuels/ucycle/pkg/io"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

// errNotUniversal makes verify exit non-zero for a rejected cycle.
var errNotUniversal = errors.New(errors.ErrCodeInvalidPermutation, "not a universal cycle")

type verifyOpts struct {
	n        int
	strategy string
	cycle    string
	all      bool
	json     bool
	noCache  bool
}

func (c *CLI) verifyCommand() *cobra.Command {
	var opts verifyOpts

	cmd := &cobra.Command{
		Use:   "verify [file|-]",
		Short: "Check whether a sequence is a universal cycle",
		Long: `Check whether a sequence is a shorthand universal cycle for the
permutations of {1..n}.

The cycle is read from a file (text or JSON), from stdin with "-", or
inline with --cycle. The order n comes from a JSON document, from --n, or
else from the largest symbol.`,
		Example: `  ucycle verify --cycle 321312
  ucycle construct 6 | ucycle verify -
  ucycle verify cycle8.json --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, n, err := readCandidate(cmd.InOrStdin(), args, opts)
			if err != nil {
				return err
			}
			return c.runVerify(cmd.Context(), cmd.OutOrStdout(), u, n, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.n, "n", "n", 0, "order of the cycle (default inferred)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "ranking strategy: ruskey-williams, lehmer or 7-order")
	cmd.Flags().StringVar(&opts.cycle, "cycle", "", "cycle given inline, e.g. 321312 or {3,2,1,3,1,2}")
	cmd.Flags().BoolVar(&opts.all, "all", false, "verify with every strategy")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// readCandidate loads the cycle and its order from the command inputs.
func readCandidate(stdin io.Reader, args []string, opts verifyOpts) ([]int, int, error) {
	var (
		u   []int
		n   int
		err error
	)
	switch {
	case opts.cycle != "" && len(args) > 0:
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "give either a file or --cycle, not both")
	case opts.cycle != "":
		u, err = pkgio.DecodeText(opts.cycle)
	case len(args) == 0:
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "no cycle given (file, - or --cycle)")
	case args[0] == "-":
		u, err = pkgio.ReadText(stdin)
	case strings.EqualFold(filepath.Ext(args[0]), ".json"):
		u, n, err = pkgio.ImportJSON(args[0])
	default:
		u, err = pkgio.ImportText(args[0])
	}
	if err != nil {
		return nil, 0, err
	}

	if opts.n > 0 {
		if n > 0 && n != opts.n {
			return nil, 0, errors.New(errors.ErrCodeInvalidInput, "--n %d contradicts document order %d", opts.n, n)
		}
		n = opts.n
	}
	if n == 0 {
		n = inferOrder(u)
	}
	return u, n, nil
}

// inferOrder returns the largest symbol of u, the only order u can be a
// cycle for.
func inferOrder(u []int) int {
	n := 0
	for _, x := range u {
		n = max(n, x)
	}
	return n
}

func (c *CLI) runVerify(ctx context.Context, stdout io.Writer, u []int, n int, opts verifyOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	strategies := []string{opts.strategy}
	if opts.all {
		strategies = nil
		for _, s := range ucycle.Strategies() {
			strategies = append(strategies, s.String())
		}
	}

	reports := make([]*ucycle.Report, 0, len(strategies))
	for _, s := range strategies {
		report, err := runner.Verify(ctx, u, c.baseOptions(ctx, n, s))
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	} else {
		printReports(reports)
	}

	for _, r := range reports {
		if !r.Valid {
			return errNotUniversal
		}
	}
	return nil
}

func printReports(reports []*ucycle.Report) {
	first := reports[0]
	if first.Valid {
		printSuccess("Universal cycle of order %d", first.N)
	} else {
		printError("Not a universal cycle of order %d", first.N)
		printDetail("%s (window %d)", first.Reason, first.FailedAt)
	}
	printKeyValue("Length", strconv.Itoa(first.Length))
	printKeyValue("Windows", strconv.FormatUint(first.Windows, 10))

	if len(reports) > 1 {
		rows := make([][]string, len(reports))
		for i, r := range reports {
			verdict := "valid"
			if !r.Valid {
				verdict = "rejected at " + strconv.Itoa(r.FailedAt)
			}
			rows[i] = []string{r.Strategy.String(), strconv.FormatUint(r.Windows, 10), verdict}
		}
		fmt.Fprintln(statusOut, renderTable([]string{"strategy", "windows", "verdict"}, rows))
	}
}
