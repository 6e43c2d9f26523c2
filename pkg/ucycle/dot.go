package ucycle

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ucycle/pkg/errors"
)

// MaxGraphOrder is the largest n ToDOT accepts; 5! = 120 nodes is about as
// much as a rendered walk stays readable.
const MaxGraphOrder = 5

// ToDOT returns a Graphviz DOT representation of the construction walk for
// order n: one node per permutation, in visiting order, and one edge per
// rotation. σn edges are solid, σn-1 edges dashed, and the final edge closes
// the cycle back to (n, n-1, ..., 1).
//
// Each node is labelled with its permutation; the first symbol (the one the
// cycle records) is shown in brackets.
//
// Example:
//
//	dot, err := ucycle.ToDOT(3)
//	// Use 'dot' command or RenderSVG to visualize
func ToDOT(n int) (string, error) {
	if n < 2 || n > MaxGraphOrder {
		return "", errors.New(errors.ErrCodeOutOfRange, "graph order must be in [2,%d], got %d", MaxGraphOrder, n)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph UCycle {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	var moves []Move
	err := Walk(n, func(i uint64, p []int, next Move) bool {
		fmt.Fprintf(&buf, "  p%d [label=%q];\n", i, nodeLabel(p))
		moves = append(moves, next)
		return true
	})
	if err != nil {
		return "", err
	}

	buf.WriteString("\n")
	for i, m := range moves {
		to := (i + 1) % len(moves)
		style := "solid"
		if m == SigmaHold {
			style = "dashed"
		}
		fmt.Fprintf(&buf, "  p%d -> p%d [label=%q, style=%s];\n", i, to, m.String(), style)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeLabel(p []int) string {
	parts := make([]string, len(p))
	for i, x := range p {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + parts[0] + "]" + strings.Join(parts[1:], "")
}

// RenderSVG renders the construction walk for order n as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it. Errors are returned if Graphviz cannot initialize, the DOT is
// malformed, or rendering fails.
func RenderSVG(ctx context.Context, n int) ([]byte, error) {
	dot, err := ToDOT(n)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return out.Bytes(), nil
}
