package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/errors"
	pkgio "github.com/matzehuels/ucycle/pkg/io"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

func (c *CLI) indexCommand() *cobra.Command {
	var window bool

	cmd := &cobra.Command{
		Use:   "index <n> <i>",
		Short: "Print symbol i of the cycle of order n without building it",
		Long: `Print symbol i of the cycle "construct n" would build.

The symbol is found by unranking i, so this works for every order up to 20
even though those cycles are far too long to build.`,
		Example: `  ucycle index 4 9
  ucycle index 20 2432902008176639999 --window`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			i, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "index %q", args[1])
			}

			out := cmd.OutOrStdout()
			if window {
				p, err := ucycle.PermutationAt(n, i)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, pkgio.EncodeList(p))
				return err
			}
			x, err := ucycle.SymbolAt(n, i)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, x)
			return err
		},
	}

	cmd.Flags().BoolVarP(&window, "window", "w", false, "print the whole permutation whose window starts at i")
	return cmd
}
