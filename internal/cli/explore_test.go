package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ucycle/pkg/perm"
	"github.com/matzehuels/ucycle/pkg/ucycle"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m exploreModel, keys ...string) exploreModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(exploreModel)
	}
	return m
}

func TestExploreModelNavigation(t *testing.T) {
	u, err := ucycle.Construct(3)
	if err != nil {
		t.Fatal(err)
	}
	m := newExploreModel(u, 3)

	tests := []struct {
		keys []string
		want int
	}{
		{nil, 0},
		{[]string{"right"}, 1},
		{[]string{"left"}, 5},
		{[]string{"l", "l", "h"}, 1},
		{[]string{"J"}, 3},
		{[]string{"K"}, 3},
		{[]string{"J", "J"}, 0},
		{[]string{"G"}, 5},
		{[]string{"G", "right"}, 0},
		{[]string{"J", "g"}, 0},
	}
	for _, tt := range tests {
		if got := press(m, tt.keys...).cursor; got != tt.want {
			t.Errorf("keys %v: cursor = %d, want %d", tt.keys, got, tt.want)
		}
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newExploreModel([]int{3, 2, 1, 3, 1, 2}, 3)
	if _, cmd := m.Update(keyMsg("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
	if _, cmd := m.Update(keyMsg("right")); cmd != nil {
		t.Error("navigation should not return a command")
	}
}

func TestExploreModelWindowSize(t *testing.T) {
	m := newExploreModel([]int{3, 2, 1, 3, 1, 2}, 3)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if got := next.(exploreModel).width; got != 40 {
		t.Errorf("width = %d, want 40", got)
	}
}

// The move reported at each window must lead to the next window's
// permutation.
func TestExploreNextMove(t *testing.T) {
	for _, n := range []int{3, 4, 5} {
		u, err := ucycle.Construct(n)
		if err != nil {
			t.Fatal(err)
		}
		m := newExploreModel(u, n)
		for i := range u {
			m.cursor = i
			p := m.permutation()
			if p == nil {
				t.Fatalf("n=%d window %d: no permutation", n, i)
			}
			next := slices.Clone(p)
			if m.nextMove(p) == ucycle.Sigma.String() {
				perm.RotateLeft(next)
			} else {
				perm.RotateLeftHoldLast(next)
			}

			m.cursor = (i + 1) % len(u)
			if want := m.permutation(); !slices.Equal(next, want) {
				t.Errorf("n=%d window %d: move gives %v, next window is %v", n, i, next, want)
			}
		}
	}
}

func TestExploreView(t *testing.T) {
	m := newExploreModel([]int{3, 2, 1, 3, 1, 2}, 3)
	view := m.View()
	for _, want := range []string{"Universal cycle of order 3", "window 0", "ruskey-williams", "[1/6]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
}
