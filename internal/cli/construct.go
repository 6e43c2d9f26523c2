package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/errors"
	pkgio "github.com/matzehuels/ucycle/pkg/io"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

// Output formats for cycles.
const (
	formatText = "text"
	formatJSON = "json"
	formatList = "list"
)

type constructOpts struct {
	output  string
	format  string
	control bool
	to      int
	noCache bool
	refresh bool
}

func (c *CLI) constructCommand() *cobra.Command {
	var opts constructOpts

	cmd := &cobra.Command{
		Use:   "construct <n>",
		Short: "Build the universal cycle of order n",
		Long: `Build the shorthand universal cycle for the permutations of {1..n}.

The cycle has n! symbols. Symbols 10 and above are written as A, B, ...
With --to, every order from n to the given bound is built in parallel and
written to <output>/cycle-<n>.<ext>.`,
		Example: `  ucycle construct 4
  ucycle construct 8 -o cycle8.json
  ucycle construct 5 --control
  ucycle construct 2 --to 9 -o cycles/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			if opts.to > 0 {
				return c.runConstructRange(cmd.Context(), n, opts)
			}
			return c.runConstruct(cmd.Context(), cmd.OutOrStdout(), n, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, json or list (default from extension, else text)")
	cmd.Flags().BoolVar(&opts.control, "control", false, "print the σn/σn-1 control sequence instead of the cycle")
	cmd.Flags().IntVar(&opts.to, "to", 0, "build every order from n to this bound")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")

	return cmd
}

func (c *CLI) runConstruct(ctx context.Context, stdout io.Writer, n int, opts constructOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.baseOptions(ctx, n, "")
	po.Refresh = opts.refresh

	if opts.control {
		bits, err := runner.ControlSequence(ctx, po)
		if err != nil {
			return err
		}
		return writeOutput(stdout, opts.output, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, controlString(bits))
			return err
		})
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building cycle of order %d...", n))
	spinner.Start()
	u, cached, err := runner.ConstructWithCacheInfo(ctx, po)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built cycle of order %d", n))

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	if err := writeOutput(stdout, opts.output, func(w io.Writer) error {
		return writeCycle(w, u, n, format)
	}); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Cycle of order %d", n)
		printCycleStats(n, len(u), cached)
		printFile(opts.output)
		printNextStep("Verify it", fmt.Sprintf("ucycle verify %s", opts.output))
	}
	return nil
}

func (c *CLI) runConstructRange(ctx context.Context, lo int, opts constructOpts) error {
	if opts.output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--to needs an output directory (-o)")
	}
	if err := errors.ValidateCyclePath(opts.output); err != nil {
		return err
	}
	format := opts.format
	if format == "" {
		format = formatText
	}
	if _, err := resolveFormat(format, ""); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.baseOptions(ctx, lo, "")
	po.Refresh = opts.refresh

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building orders %d..%d...", lo, opts.to))
	spinner.Start()
	cycles, err := runner.ConstructRange(ctx, lo, opts.to, po)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d cycles", len(cycles)))

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return err
	}
	ext := map[string]string{formatText: ".txt", formatJSON: ".json", formatList: ".txt"}[format]
	rows := make([][]string, 0, len(cycles))
	for n := lo; n <= opts.to; n++ {
		path := filepath.Join(opts.output, fmt.Sprintf("cycle-%d%s", n, ext))
		u := cycles[n]
		if err := writeOutput(nil, path, func(w io.Writer) error { return writeCycle(w, u, n, format) }); err != nil {
			return err
		}
		rows = append(rows, []string{strconv.Itoa(n), strconv.Itoa(len(u)), path})
	}
	fmt.Fprintln(statusOut, renderTable([]string{"n", "length", "file"}, rows))
	return nil
}

func writeCycle(w io.Writer, u []int, n int, format string) error {
	switch format {
	case formatJSON:
		return pkgio.WriteJSON(u, n, ucycle.Canonical.String(), w)
	case formatList:
		_, err := fmt.Fprintln(w, pkgio.EncodeList(u))
		return err
	default:
		return pkgio.WriteText(u, w)
	}
}

// resolveFormat picks the explicit format or derives it from the file
// extension.
func resolveFormat(format, path string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return formatJSON, nil
		}
		return formatText, nil
	}
	switch format {
	case formatText, formatJSON, formatList:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want text, json or list)", format)
}

// writeOutput runs write against path, or against stdout when path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	if err := errors.ValidateCyclePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseOrder(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "order %q", s)
	}
	return n, nil
}

func controlString(bits []byte) string {
	b := make([]byte, len(bits))
	for i, x := range bits {
		b[i] = '0' + x
	}
	return string(b)
}
