package viewmodel

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Makepad-fr/todos/internal/model"
)

type fakeSource struct {
	todos []model.Todo
	err   error
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]model.Todo, error) {
	f.calls++
	return f.todos, f.err
}

func seed() []model.Todo {
	return []model.Todo{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
	}
}

func ids(todos []model.Todo) []int {
	out := make([]int, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestLoadReplacesCollection(t *testing.T) {
	l := New(WithTodos([]model.Todo{{ID: 9, Title: "stale"}}))
	src := &fakeSource{todos: seed()}

	if err := l.Load(context.Background(), src); err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}
	if !reflect.DeepEqual(l.Todos(), seed()) {
		t.Fatalf("unexpected collection: %+v", l.Todos())
	}

	// The list owns its copy.
	src.todos[0].Title = "mutated"
	if got, _ := l.Get(1); got.Title != "a" {
		t.Fatalf("collection aliases the fetched slice: %+v", got)
	}
}

func TestLoadFailureKeepsCollectionEmpty(t *testing.T) {
	boom := errors.New("boom")
	l := New()
	err := l.Load(context.Background(), &fakeSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty collection, got %d", l.Len())
	}
	if l.RemainingCount() != 0 {
		t.Fatalf("expected zero remaining, got %d", l.RemainingCount())
	}
}

func TestAddPrepends(t *testing.T) {
	l := New(WithTodos(seed()))
	got := l.Add("x")

	want := model.Todo{ID: 3, Title: "x"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if first := l.Todos()[0]; first != want {
		t.Fatalf("new todo not at index 0: %+v", first)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 todos, got %d", l.Len())
	}
}

func TestAddAcceptsEmptyTitle(t *testing.T) {
	l := New()
	got := l.Add("")
	if got.ID != 1 || got.Title != "" || got.Completed {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	l := New(WithTodos(seed()))
	before, _ := l.Get(2)

	if !l.Toggle(2) {
		t.Fatal("expected toggle to match")
	}
	mid, _ := l.Get(2)
	if mid.Completed == before.Completed {
		t.Fatal("toggle did not flip completed")
	}
	l.Toggle(2)
	after, _ := l.Get(2)
	if after != before {
		t.Fatalf("got %+v, want %+v", after, before)
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	l := New(WithTodos(seed()))
	if l.Toggle(42) {
		t.Fatal("expected no match")
	}
	if !reflect.DeepEqual(l.Todos(), seed()) {
		t.Fatalf("collection changed: %+v", l.Todos())
	}
}

func TestRemove(t *testing.T) {
	l := New(WithTodos(seed()))
	if !l.Remove(1) {
		t.Fatal("expected remove to match")
	}
	for _, f := range model.Filters {
		for _, todo := range l.VisibleTodosFor(f) {
			if todo.ID == 1 {
				t.Fatalf("removed todo still visible under %s", f)
			}
		}
	}
	if l.Remove(1) {
		t.Fatal("second remove should be a no-op")
	}
	if got := ids(l.Todos()); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("remaining ids not preserved: %v", got)
	}
}

func TestFilterPartition(t *testing.T) {
	l := New(WithTodos([]model.Todo{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
		{ID: 3, Title: "c"},
		{ID: 4, Title: "d", Completed: true},
		{ID: 5, Title: "e"},
	}))

	all := ids(l.VisibleTodosFor(model.FilterAll))
	active := ids(l.VisibleTodosFor(model.FilterActive))
	completed := ids(l.VisibleTodosFor(model.FilterCompleted))

	seen := map[int]int{}
	for _, id := range active {
		seen[id]++
	}
	for _, id := range completed {
		seen[id]++
	}
	if len(seen) != len(all) {
		t.Fatalf("union %v does not match all %v", seen, all)
	}
	for _, id := range all {
		if seen[id] != 1 {
			t.Fatalf("id %d appears %d times across active/completed", id, seen[id])
		}
	}
	if !reflect.DeepEqual(active, []int{1, 3, 5}) {
		t.Fatalf("active order changed: %v", active)
	}
}

func TestRemainingCountIgnoresFilter(t *testing.T) {
	l := New(WithTodos(seed()))
	l.Add("c")
	for _, f := range model.Filters {
		l.SetFilter(f)
		want := len(l.VisibleTodosFor(model.FilterAll)) - len(l.VisibleTodosFor(model.FilterCompleted))
		if got := l.RemainingCount(); got != want || got != 2 {
			t.Fatalf("filter %s: remaining %d, want %d", f, got, want)
		}
	}
	if l.CompletedCount() != 1 {
		t.Fatalf("expected one completed, got %d", l.CompletedCount())
	}
}

func TestClearCompleted(t *testing.T) {
	l := New(WithTodos([]model.Todo{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
		{ID: 3, Title: "c"},
		{ID: 4, Title: "d", Completed: true},
	}))
	if n := l.ClearCompleted(); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if got := l.VisibleTodosFor(model.FilterCompleted); len(got) != 0 {
		t.Fatalf("completed todos remain: %+v", got)
	}
	want := []model.Todo{{ID: 1, Title: "a"}, {ID: 3, Title: "c"}}
	if !reflect.DeepEqual(l.Todos(), want) {
		t.Fatalf("got %+v, want %+v", l.Todos(), want)
	}
}

func TestVisibleTodosIsACopy(t *testing.T) {
	l := New(WithTodos(seed()))
	v := l.VisibleTodos()
	v[0].Title = "changed"
	if got, _ := l.Get(1); got.Title != "a" {
		t.Fatalf("visible slice aliases the collection: %+v", got)
	}
}

func TestEndToEndScenario(t *testing.T) {
	l := New(WithTodos(seed()))

	l.Add("c")
	want := []model.Todo{
		{ID: 3, Title: "c"},
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
	}
	if !reflect.DeepEqual(l.Todos(), want) {
		t.Fatalf("after add: %+v", l.Todos())
	}
	if l.RemainingCount() != 2 {
		t.Fatalf("remaining: %d", l.RemainingCount())
	}

	l.SetFilter(model.FilterCompleted)
	if got := l.VisibleTodos(); !reflect.DeepEqual(got, []model.Todo{{ID: 2, Title: "b", Completed: true}}) {
		t.Fatalf("completed view: %+v", got)
	}

	l.ClearCompleted()
	want = []model.Todo{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}}
	if !reflect.DeepEqual(l.Todos(), want) {
		t.Fatalf("after clear: %+v", l.Todos())
	}
}

func TestEditSession(t *testing.T) {
	t.Run("commit renames and clears the session", func(t *testing.T) {
		l := New(WithTodos(seed()))
		if !l.BeginEdit(2) {
			t.Fatal("expected edit to start")
		}
		s, ok := l.Editing()
		if !ok || s.Text != "b" || s.Todo.ID != 2 {
			t.Fatalf("unexpected session: %+v", s)
		}
		l.SetEditText("bee")
		if !l.CommitEdit() {
			t.Fatal("expected commit")
		}
		got, _ := l.Get(2)
		if got != (model.Todo{ID: 2, Title: "bee", Completed: true}) {
			t.Fatalf("unexpected todo after commit: %+v", got)
		}
		if _, ok := l.Editing(); ok {
			t.Fatal("session should end after commit")
		}
		if l.CommitEdit() {
			t.Fatal("commit without a session should report false")
		}
	})

	t.Run("second begin discards the first", func(t *testing.T) {
		l := New(WithTodos(seed()))
		l.BeginEdit(1)
		l.SetEditText("draft")
		l.BeginEdit(2)
		s, _ := l.Editing()
		if s.Todo.ID != 2 || s.Text != "b" {
			t.Fatalf("unexpected session: %+v", s)
		}
		l.CommitEdit()
		if got, _ := l.Get(1); got.Title != "a" {
			t.Fatalf("discarded draft leaked: %+v", got)
		}
	})

	t.Run("unknown id does not start a session", func(t *testing.T) {
		l := New(WithTodos(seed()))
		if l.BeginEdit(7) {
			t.Fatal("expected no session")
		}
		if _, ok := l.Editing(); ok {
			t.Fatal("session should not exist")
		}
	})

	t.Run("commit after remove is a no-op", func(t *testing.T) {
		l := New(WithTodos(seed()))
		l.BeginEdit(1)
		l.SetEditText("ghost")
		l.Remove(1)
		l.CommitEdit()
		if _, ok := l.Get(1); ok {
			t.Fatal("removed todo came back")
		}
	})

	t.Run("cancel leaves the title", func(t *testing.T) {
		l := New(WithTodos(seed()))
		l.BeginEdit(1)
		l.SetEditText("nope")
		l.CancelEdit()
		if got, _ := l.Get(1); got.Title != "a" {
			t.Fatalf("cancel changed title: %+v", got)
		}
	})
}

func TestSubmit(t *testing.T) {
	l := New(WithTodos(seed()))

	l.SetInput("new")
	l.Submit()
	if first := l.Todos()[0]; first.Title != "new" || first.ID != 3 {
		t.Fatalf("submit without session should add: %+v", first)
	}
	if l.Input() != "" {
		t.Fatalf("input not cleared: %q", l.Input())
	}

	l.BeginEdit(1)
	l.SetInput("renamed")
	l.Submit()
	if got, _ := l.Get(1); got.Title != "renamed" {
		t.Fatalf("submit with session should commit: %+v", got)
	}
	if l.Len() != 3 {
		t.Fatalf("commit should not add, len %d", l.Len())
	}
	if _, ok := l.Editing(); ok {
		t.Fatal("session should end after submit")
	}
}

func TestIDPolicy(t *testing.T) {
	t.Run("length reuses ids after removal", func(t *testing.T) {
		l := New(WithTodos(seed()))
		l.Remove(2)
		if got := l.Add("again"); got.ID != 2 {
			t.Fatalf("expected reused id 2, got %d", got.ID)
		}
	})

	t.Run("length collisions act on every match", func(t *testing.T) {
		l := New(WithTodos([]model.Todo{{ID: 2, Title: "b"}}))
		l.Add("dup") // len 1 -> id 2
		l.Toggle(2)
		if l.RemainingCount() != 0 {
			t.Fatalf("expected both id-2 todos toggled, remaining %d", l.RemainingCount())
		}
		l.Remove(2)
		if l.Len() != 0 {
			t.Fatalf("expected both id-2 todos removed, len %d", l.Len())
		}
	})

	t.Run("monotonic never reuses", func(t *testing.T) {
		l := New(WithIDPolicy(IDPolicyMonotonic), WithTodos(seed()))
		l.Remove(2)
		if got := l.Add("x"); got.ID != 3 {
			t.Fatalf("expected id 3, got %d", got.ID)
		}
		l.Remove(3)
		if got := l.Add("y"); got.ID != 4 {
			t.Fatalf("expected id 4, got %d", got.ID)
		}
	})

	t.Run("parse", func(t *testing.T) {
		for in, want := range map[string]IDPolicy{"": IDPolicyLength, "length": IDPolicyLength, "monotonic": IDPolicyMonotonic} {
			got, err := ParseIDPolicy(in)
			if err != nil || got != want {
				t.Fatalf("ParseIDPolicy(%q) = %q, %v", in, got, err)
			}
		}
		if _, err := ParseIDPolicy("uuid"); err == nil {
			t.Fatal("expected error for unknown policy")
		}
	})
}
