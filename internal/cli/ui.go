package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjaus/tablespan"
)

var (
	colorCyan = lipgloss.Color("36")  // spanners
	colorGray = lipgloss.Color("245") // secondary text
	colorDim  = lipgloss.Color("240") // muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSpanner = lipgloss.NewStyle().Foreground(colorCyan)
	styleColumn  = lipgloss.NewStyle().Foreground(colorGray)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

// headerTree renders one side of a header as a lipgloss tree. Leaves show
// the column they display when it differs from their name.
func headerTree(label string, e *tablespan.HeaderEntry) *tree.Tree {
	t := tree.Root(styleTitle.Render(label)).Enumerator(tree.RoundedEnumerator)
	if e == nil {
		return t.Child(styleDim.Render("(none)"))
	}
	for _, child := range e.Entries {
		t.Child(entryNode(child))
	}
	return t
}

func entryNode(e *tablespan.HeaderEntry) any {
	info := styleDim.Render(fmt.Sprintf(" width=%d level=%d", e.Width, e.Level))
	if e.IsLeaf() {
		name := e.Name
		if e.ItemName != e.Name {
			name += styleColumn.Render(" ← " + e.ItemName)
		}
		return name + info
	}
	t := tree.Root(styleSpanner.Render(e.Name) + info)
	for _, child := range e.Entries {
		t.Child(entryNode(child))
	}
	return t
}
