// Package tui renders the todo view-model as a Bubble Tea program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/ui"
	"github.com/Makepad-fr/todos/internal/viewmodel"
)

const (
	placeholderAdd  = "What needs to be done?"
	placeholderEdit = "Rename todo..."
	// rows taken by everything but the list: header, input box, status, help, frame.
	chromeHeight = 10
)

type loadedMsg struct{ todos []model.Todo }

type loadFailedMsg struct{ err error }

// Model is the Bubble Tea model. All list state lives in the view-model;
// this type only holds widgets and load status.
type Model struct {
	ctx    context.Context
	vm     *viewmodel.List
	src    viewmodel.Source
	logger *log.Logger

	list list.Model
	ti   textinput.Model
	help help.Model
	keys keyMap

	loading bool
	loadErr error
	width   int
	height  int
}

// New wires a model around vm. src is fetched once from Init.
func New(ctx context.Context, vm *viewmodel.List, src viewmodel.Source, logger *log.Logger) Model {
	l := list.New(nil, itemDelegate{editingID: -1}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = ui.Current().Help

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholderAdd
	ti.CharLimit = 200

	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		ctx:     ctx,
		vm:      vm,
		src:     src,
		logger:  logger,
		list:    l,
		ti:      ti,
		help:    help.New(),
		keys:    defaultKeyMap(),
		loading: src != nil,
	}
	m.resize()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, vm *viewmodel.List, src viewmodel.Source, logger *log.Logger) error {
	p := tea.NewProgram(New(ctx, vm, src, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init kicks off the one-shot load.
func (m Model) Init() tea.Cmd {
	if m.src == nil {
		return nil
	}
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, src := m.ctx, m.src
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		todos, err := src.Fetch(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{todos: todos}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case loadedMsg:
		m.loading = false
		m.vm.Replace(msg.todos)
		m.logger.Info("todos loaded", "count", len(msg.todos))
		m.refresh()
		return m, nil

	case loadFailedMsg:
		// The list stays empty; the status line carries a hint.
		m.loading = false
		m.loadErr = msg.err
		m.logger.Error("load todos", "err", msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.ti.Focused() {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.ti.Focused() {
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles keys while the add/edit input has focus.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		m.vm.SetInput(m.ti.Value())
		s, editing := m.vm.Editing()
		if editing {
			m.logger.Debug("commit edit", "id", s.Todo.ID)
		} else {
			m.logger.Debug("add todo")
		}
		m.vm.Submit()
		m.closeInput()
		m.refresh()
		if !editing {
			m.list.Select(0)
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.vm.CancelEdit()
		m.closeInput()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.vm.SetInput(m.ti.Value())
	if _, ok := m.vm.Editing(); ok {
		m.vm.SetEditText(m.ti.Value())
	}
	return m, cmd
}

// updateList handles keys while the list has focus.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.vm.CancelEdit()
		m.ti.Placeholder = placeholderAdd
		m.ti.SetValue("")
		m.resize()
		return m, m.ti.Focus()

	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok || !m.vm.BeginEdit(t.ID) {
			return m, nil
		}
		m.ti.Placeholder = placeholderEdit
		m.ti.SetValue(t.Title)
		m.ti.CursorEnd()
		m.vm.SetInput(t.Title)
		m.refresh()
		return m, m.ti.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.vm.Toggle(t.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if t, ok := m.selected(); ok {
			m.vm.Remove(t.ID)
			m.logger.Debug("removed todo", "id", t.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.All):
		return m.setFilter(model.FilterAll)
	case key.Matches(msg, m.keys.Active):
		return m.setFilter(model.FilterActive)
	case key.Matches(msg, m.keys.Complete):
		return m.setFilter(model.FilterCompleted)
	case key.Matches(msg, m.keys.Cycle):
		return m.setFilter(m.vm.Filter().Next())

	case key.Matches(msg, m.keys.Clear):
		n := m.vm.ClearCompleted()
		m.logger.Debug("cleared completed", "count", n)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) setFilter(f model.Filter) (tea.Model, tea.Cmd) {
	m.vm.SetFilter(f)
	m.list.Select(0)
	m.refresh()
	return m, nil
}

func (m *Model) closeInput() {
	m.ti.SetValue("")
	m.ti.Placeholder = placeholderAdd
	m.ti.Blur()
	m.resize()
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// refresh re-projects the view-model into the list widget.
func (m *Model) refresh() {
	d := itemDelegate{editingID: -1}
	if s, ok := m.vm.Editing(); ok {
		d.editingID = s.Todo.ID
	}
	m.list.SetDelegate(d)

	idx := m.list.Index()
	items := toListItems(m.vm.VisibleTodos())
	m.list.SetItems(items)
	switch {
	case len(items) == 0:
		m.list.Select(0)
	case idx >= len(items):
		m.list.Select(len(items) - 1)
	}
}

func (m *Model) resize() {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	listHeight := h - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(w-4, listHeight)
	m.ti.Width = w - 10
}

// View implements tea.Model.
func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder

	total := m.vm.Len()
	done := m.vm.CompletedCount()
	fmt.Fprintf(&b, "%s  %s %d/%d\n\n",
		t.Title.Render("Todos"),
		t.Accent.Render(ui.ProgressBar(done, total, 20)),
		done, total,
	)

	input := m.ti.View()
	if _, ok := m.vm.Editing(); ok {
		input = t.Pending.Render("Edit") + "\n" + input
	}
	b.WriteString(ui.Panel(input))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(t.Muted.Render("  loading todos…"))
	case len(m.list.Items()) == 0:
		b.WriteString(t.Muted.Render("  nothing to do"))
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.ti.Focused() {
		b.WriteString(m.help.View(inputKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return ui.Panel(b.String())
}

// statusLine is "<n> items left!" followed by the filter and clear controls.
func (m Model) statusLine() string {
	t := ui.Current()
	parts := []string{t.Pending.Render(ui.ItemsLeft(m.vm.RemainingCount()))}
	for _, f := range model.Filters {
		style := t.Button
		if f == m.vm.Filter() {
			style = t.ButtonActive
		}
		parts = append(parts, style.Render(f.Label()))
	}
	parts = append(parts, t.Button.Render("Clear Completed"))
	line := strings.Join(parts, " ")
	if m.loadErr != nil {
		line += "\n" + t.Error.Render("could not load todos") + " " + t.Muted.Render(m.loadErr.Error())
	}
	return line
}
