package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/ui"
)

// listItem adapts model.Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders one todo per line: cursor, checkbox, title.
type itemDelegate struct {
	editingID int // -1 when no edit is active
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	title := it.todo.Title
	if title == "" {
		title = t.Muted.Render("(untitled)")
	}
	if width := m.Width() - 6; width > 0 {
		title = ansi.Truncate(title, width, "…")
	}
	if it.todo.Completed {
		title = t.Done.Render(title)
	}
	if it.todo.ID == d.editingID {
		title = t.Pending.Render("✎ ") + title
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor)
	}
	fmt.Fprintf(w, "%s%s %s", prefix, ui.Checkbox(it.todo.Completed), title)
}

func toListItems(todos []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		out = append(out, listItem{todo: t})
	}
	return out
}
