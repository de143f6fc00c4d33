// Package viewmodel holds the in-memory todo list and every state
// transition the outer surfaces (TUI, ls, MCP) are allowed to make.
package viewmodel

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/todos/internal/model"
)

// Source seeds the list. It is read once; nothing is written back.
type Source interface {
	Fetch(ctx context.Context) ([]model.Todo, error)
}

// IDPolicy decides how Add numbers new todos.
type IDPolicy string

const (
	// IDPolicyLength uses len(collection)+1. Ids can repeat after removals.
	IDPolicyLength IDPolicy = "length"
	// IDPolicyMonotonic never hands out an id twice in a session.
	IDPolicyMonotonic IDPolicy = "monotonic"
)

// ParseIDPolicy maps a config string to a policy. Empty means length.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch p := IDPolicy(s); p {
	case "":
		return IDPolicyLength, nil
	case IDPolicyLength, IDPolicyMonotonic:
		return p, nil
	}
	return "", fmt.Errorf("unknown id policy %q (want length or monotonic)", s)
}

// EditSession is the todo being renamed plus the draft title.
type EditSession struct {
	Todo model.Todo
	Text string
}

// Option customises a List.
type Option func(*List)

// WithIDPolicy selects the id policy used by Add.
func WithIDPolicy(p IDPolicy) Option {
	return func(l *List) {
		if p != "" {
			l.policy = p
		}
	}
}

// WithTodos seeds the collection without going through a Source.
func WithTodos(todos []model.Todo) Option {
	return func(l *List) { l.Replace(todos) }
}

// List is the todo view-model. It is not safe for concurrent use.
type List struct {
	todos  []model.Todo
	filter model.Filter
	edit   *EditSession
	input  string

	policy IDPolicy
	lastID int
}

// New returns an empty list showing every todo.
func New(opts ...Option) *List {
	l := &List{filter: model.FilterAll, policy: IDPolicyLength}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the collection once and replaces the current one.
// On error the collection is left untouched.
func (l *List) Load(ctx context.Context, src Source) error {
	todos, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load todos: %w", err)
	}
	l.Replace(todos)
	return nil
}

// Replace swaps in a copy of todos as the whole collection.
func (l *List) Replace(todos []model.Todo) {
	l.todos = append([]model.Todo(nil), todos...)
	for _, t := range l.todos {
		if t.ID > l.lastID {
			l.lastID = t.ID
		}
	}
}

// Add prepends a new open todo. Empty titles are accepted.
func (l *List) Add(title string) model.Todo {
	t := model.Todo{ID: l.nextID(), Title: title}
	l.todos = append([]model.Todo{t}, l.todos...)
	return t
}

func (l *List) nextID() int {
	if l.policy != IDPolicyMonotonic {
		return len(l.todos) + 1
	}
	for _, t := range l.todos {
		if t.ID > l.lastID {
			l.lastID = t.ID
		}
	}
	l.lastID++
	return l.lastID
}

// BeginEdit starts renaming the todo with id, dropping any earlier session.
func (l *List) BeginEdit(id int) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	t := l.todos[i]
	l.edit = &EditSession{Todo: t, Text: t.Title}
	return true
}

// SetEditText updates the draft title of the active session.
func (l *List) SetEditText(text string) {
	if l.edit != nil {
		l.edit.Text = text
	}
}

// CommitEdit writes the draft title to every todo sharing the edited id
// and ends the session. A todo removed while being edited stays removed.
func (l *List) CommitEdit() bool {
	if l.edit == nil {
		return false
	}
	s := *l.edit
	l.edit = nil
	for i := range l.todos {
		if l.todos[i].ID == s.Todo.ID {
			l.todos[i].Title = s.Text
		}
	}
	return true
}

// CancelEdit ends the session without changes.
func (l *List) CancelEdit() { l.edit = nil }

// Editing returns a copy of the active session.
func (l *List) Editing() (EditSession, bool) {
	if l.edit == nil {
		return EditSession{}, false
	}
	return *l.edit, true
}

// SetInput stores the text of the add/edit input.
func (l *List) SetInput(s string) { l.input = s }

// Input returns the current input text.
func (l *List) Input() string { return l.input }

// Submit is the form gesture: commit the edit when one is active,
// otherwise add the input as a new todo. The input is cleared either way.
func (l *List) Submit() {
	defer func() { l.input = "" }()
	if l.edit != nil {
		l.SetEditText(l.input)
		l.CommitEdit()
		return
	}
	l.Add(l.input)
}

// Toggle flips the completed flag of the todo with id.
// Every entry sharing the id flips.
func (l *List) Toggle(id int) bool {
	matched := false
	for i := range l.todos {
		if l.todos[i].ID == id {
			l.todos[i].Completed = !l.todos[i].Completed
			matched = true
		}
	}
	return matched
}

// Remove deletes the todo with id. Remaining ids are not renumbered.
func (l *List) Remove(id int) bool {
	kept := l.todos[:0]
	for _, t := range l.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	matched := len(kept) != len(l.todos)
	l.todos = kept
	return matched
}

// ClearCompleted drops every completed todo and returns how many went.
func (l *List) ClearCompleted() int {
	kept := l.todos[:0]
	for _, t := range l.todos {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	n := len(l.todos) - len(kept)
	l.todos = kept
	return n
}

// SetFilter changes the visible subset. The collection is not touched.
func (l *List) SetFilter(f model.Filter) { l.filter = f }

// Filter returns the active filter.
func (l *List) Filter() model.Filter { return l.filter }

// VisibleTodos projects the collection through the active filter.
func (l *List) VisibleTodos() []model.Todo { return l.VisibleTodosFor(l.filter) }

// VisibleTodosFor projects the collection through f without changing state.
func (l *List) VisibleTodosFor(f model.Filter) []model.Todo {
	out := make([]model.Todo, 0, len(l.todos))
	for _, t := range l.todos {
		if f.Keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// RemainingCount counts open todos across the whole collection.
func (l *List) RemainingCount() int {
	n := 0
	for _, t := range l.todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount counts completed todos across the whole collection.
func (l *List) CompletedCount() int { return len(l.todos) - l.RemainingCount() }

// Len is the size of the whole collection.
func (l *List) Len() int { return len(l.todos) }

// Todos returns a copy of the whole collection in order.
func (l *List) Todos() []model.Todo { return append([]model.Todo(nil), l.todos...) }

// Get returns the todo with id.
func (l *List) Get(id int) (model.Todo, bool) {
	if i := l.index(id); i >= 0 {
		return l.todos[i], true
	}
	return model.Todo{}, false
}

// index finds the first todo with id.
func (l *List) index(id int) int {
	for i, t := range l.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
