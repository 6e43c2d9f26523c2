package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/perm"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

// maxExploreOrder keeps the cycle small enough to page through.
const maxExploreOrder = 8

var (
	exploreWindowStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreMissingStyle = lipgloss.NewStyle().Foreground(colorYellow)
	exploreDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) exploreCommand() *cobra.Command {
	var start uint64

	cmd := &cobra.Command{
		Use:   "explore <n>",
		Short: "Browse the windows of a cycle interactively",
		Long: fmt.Sprintf(`Step through the cycle of order n one window at a time, showing the
completed permutation, its rank under every strategy and the rotation
that leads to the next window. Orders 2 to %d are supported.`, maxExploreOrder),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			if n < 2 || n > maxExploreOrder {
				return fmt.Errorf("explore supports orders 2 to %d, got %d", maxExploreOrder, n)
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			u, err := runner.Construct(ctx, c.baseOptions(ctx, n, ""))
			if err != nil {
				return err
			}
			m := newExploreModel(u, n)
			m.cursor = int(start % uint64(len(u)))
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&start, "start", 0, "window to start at")
	return cmd
}

// =============================================================================
// exploreModel - Interactive window browser
// =============================================================================

type exploreModel struct {
	cycle  []int
	n      int
	cursor int // start of the current window
	width  int
}

func newExploreModel(u []int, n int) exploreModel {
	return exploreModel{cycle: u, n: n, width: 80}
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	l := len(m.cycle)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.cursor = (m.cursor + 1) % l
		case "left", "h":
			m.cursor = (m.cursor - 1 + l) % l
		case "pgdown", "J":
			m.cursor = (m.cursor + m.n) % l
		case "pgup", "K":
			m.cursor = ((m.cursor-m.n)%l + l) % l
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = l - 1
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// permutation completes the window at the cursor.
func (m exploreModel) permutation() []int {
	w, err := perm.NewWindow(m.cycle, m.cursor, m.n-1)
	if err != nil {
		return nil
	}
	p, err := w.Complete(m.n)
	if err != nil {
		return nil
	}
	return p
}

// nextMove reports which rotation maps the current permutation to the next.
func (m exploreModel) nextMove(p []int) string {
	next := slices.Clone(p)
	perm.RotateLeft(next)
	if m.cycle[(m.cursor+m.n-1)%len(m.cycle)] == next[m.n-2] {
		return ucycle.Sigma.String()
	}
	return ucycle.SigmaHold.String()
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Universal cycle of order %d", m.n)))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("←/→ step  pgup/pgdn jump  g/G ends  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.strip())
	b.WriteString("\n\n")

	p := m.permutation()
	if p == nil {
		b.WriteString(styleIconError.Render("invalid window"))
		return b.String()
	}
	printed := make([]string, len(p))
	for i, x := range p {
		s := strconv.Itoa(x)
		if i == len(p)-1 {
			s = exploreMissingStyle.Render(s)
		}
		printed[i] = s
	}
	b.WriteString(fmt.Sprintf("window %d  [%s]  next %s\n\n", m.cursor, strings.Join(printed, " "), m.nextMove(p)))

	rows := make([][]string, 0, len(ucycle.Strategies()))
	for _, s := range ucycle.Strategies() {
		r, err := ucycle.Rank(s, p)
		if err != nil {
			continue
		}
		rows = append(rows, []string{s.String(), strconv.FormatUint(r, 10)})
	}
	b.WriteString(renderTable([]string{"strategy", "rank"}, rows))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.cycle))))
	return b.String()
}

// strip renders the symbols around the cursor with the window highlighted.
func (m exploreModel) strip() string {
	l := len(m.cycle)
	span := min(l, max(m.n+2, m.width/2-2))
	before := min((span-(m.n-1))/2, l)

	var b strings.Builder
	for k := 0; k < span; k++ {
		idx := ((m.cursor-before+k)%l + l) % l
		s := strconv.Itoa(m.cycle[idx])
		if k >= before && k < before+m.n-1 {
			s = exploreWindowStyle.Render(s)
		} else {
			s = exploreDimStyle.Render(s)
		}
		b.WriteString(s)
		b.WriteString(" ")
	}
	return b.String()
}
