package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlorenz/scenetree/pkg/document"
	pkgio "github.com/mlorenz/scenetree/pkg/io"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command for interactive tree browsing.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Browse a document tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := pkgio.ImportDocument(args[0])
			if err != nil {
				return describeParseError(err)
			}
			_, err = tea.NewProgram(NewTreeModel(root)).Run()
			return err
		},
	}
}

// =============================================================================
// TreeModel - Interactive document tree browser
// =============================================================================

// treeRow is one visible line in the tree browser.
type treeRow struct {
	node    *document.Node
	path    string
	depth   int
	hasKids bool
}

// TreeModel is the bubbletea model for browsing a document tree.
// Subtrees collapse and expand with enter; collapse state is keyed by node
// path so it survives re-flattening.
type TreeModel struct {
	Root      *document.Node
	Collapsed map[string]bool
	Cursor    int
	Height    int
	Offset    int

	rows []treeRow
}

// NewTreeModel creates a tree browser over root.
func NewTreeModel(root *document.Node) TreeModel {
	m := TreeModel{
		Root:      root,
		Collapsed: make(map[string]bool),
		Height:    20,
	}
	m.flatten()
	return m
}

// flatten recomputes the visible rows, skipping collapsed subtrees.
func (m *TreeModel) flatten() {
	m.rows = m.rows[:0]
	var walk func(n *document.Node, path string, depth int)
	walk = func(n *document.Node, path string, depth int) {
		m.rows = append(m.rows, treeRow{
			node:    n,
			path:    path,
			depth:   depth,
			hasKids: len(n.Children) > 0,
		})
		if m.Collapsed[path] {
			return
		}
		for i, child := range n.Children {
			childPath := path
			if childPath == "/" {
				childPath = ""
			}
			walk(child, fmt.Sprintf("%s/children/%d", childPath, i), depth+1)
		}
	}
	if m.Root != nil {
		walk(m.Root, "/", 0)
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			row := m.rows[m.Cursor]
			if row.hasKids {
				m.Collapsed[row.path] = !m.Collapsed[row.path]
				m.flatten()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Document Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		n := row.node

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if row.hasKids {
			marker = "▾ "
			if m.Collapsed[row.path] {
				marker = "▸ "
			}
		}

		kind := styleKind(n.Kind.String()).Render(n.Kind.String())
		line := cursor + strings.Repeat("  ", row.depth) + marker + kind + " " + n.Name

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detailLine())
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	}

	return b.String()
}

// detailLine describes the selected node's geometry and content.
func (m TreeModel) detailLine() string {
	n := m.rows[m.Cursor].node
	parts := []string{
		fmt.Sprintf("at (%g, %g)", n.X, n.Y),
		fmt.Sprintf("%g × %g", n.Width, n.Height),
	}
	if n.Source != "" {
		parts = append(parts, "source "+n.Source)
	}
	if n.Text != "" {
		parts = append(parts, fmt.Sprintf("text %q", n.Text))
	}
	return listDimStyle.Render("  " + strings.Join(parts, "  ·  "))
}
