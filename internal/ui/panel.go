package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gosuri/uitable"

	"github.com/Makepad-fr/todos/internal/model"
)

// ProgressBar renders a Unicode progress bar of the given width.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Panel frames inner with the current theme's border.
func Panel(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(inner)
}

// PanelLines frames lines padded to the widest visible line.
func PanelLines(lines []string) string {
	maxw := 0
	for _, ln := range lines {
		if w := ansi.StringWidth(ln); w > maxw {
			maxw = w
		}
	}
	padded := make([]string, len(lines))
	for i, ln := range lines {
		padded[i] = ln + strings.Repeat(" ", maxw-ansi.StringWidth(ln))
	}
	return Panel(strings.Join(padded, "\n"))
}

// Checkbox returns the theme glyph for a todo's state.
func Checkbox(completed bool) string {
	t := Current()
	if completed {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// ItemsLeft is the status line wording.
func ItemsLeft(n int) string {
	return fmt.Sprintf("%d items left!", n)
}

// Table renders todos as ID / DONE / TITLE columns.
// Cells stay unstyled so uitable can measure them.
func Table(todos []model.Todo, maxTitle int) string {
	t := Current()
	table := uitable.New()
	if maxTitle > 0 {
		table.MaxColWidth = uint(maxTitle)
	}
	table.Wrap = true
	table.AddRow("ID", "DONE", "TITLE")
	for _, todo := range todos {
		box := t.BoxUnchecked
		if todo.Completed {
			box = t.BoxChecked
		}
		table.AddRow(strconv.Itoa(todo.ID), box, todo.Title)
	}
	return table.String()
}
