package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/ucycle"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		svg    bool
	)

	cmd := &cobra.Command{
		Use:   "graph <n>",
		Short: "Draw the rotation walk through all permutations of order n",
		Long: fmt.Sprintf(`Draw the walk "construct" takes through the n! permutations as a
Graphviz graph. Solid edges apply σn (rotate left), dashed edges apply
σn-1 (rotate all but the last). Orders 2 to %d are supported.

The output is DOT unless --svg is set or the output file ends in .svg.`, ucycle.MaxGraphOrder),
		Example: `  ucycle graph 3
  ucycle graph 4 -o walk4.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(output), ".svg") {
				svg = true
			}

			var data []byte
			if svg {
				spinner := newSpinnerWithContext(cmd.Context(), "Rendering SVG...")
				spinner.Start()
				data, err = ucycle.RenderSVG(cmd.Context(), n)
				spinner.Stop()
			} else {
				var dot string
				dot, err = ucycle.ToDOT(n)
				data = []byte(dot)
			}
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Rotation graph of order %d", n)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with Graphviz")
	return cmd
}
