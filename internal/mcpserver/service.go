// Package mcpserver exposes the todo view-model as Model Context Protocol
// tools and resources.
package mcpserver

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/viewmodel"
)

// Service serialises access to a view-model shared by concurrent MCP sessions.
type Service struct {
	mu     sync.Mutex
	vm     *viewmodel.List
	logger *log.Logger
}

// Snapshot is what list-style tools and resources return.
type Snapshot struct {
	Filter    model.Filter `json:"filter"`
	Todos     []model.Todo `json:"todos"`
	Remaining int          `json:"remaining"`
	Total     int          `json:"total"`
}

// Change reports whether a mutation found the todo it was aimed at.
type Change struct {
	ID        int  `json:"id"`
	Matched   bool `json:"matched"`
	Remaining int  `json:"remaining"`
}

// NewService wraps vm. A nil logger discards output.
func NewService(vm *viewmodel.List, logger *log.Logger) *Service {
	if vm == nil {
		vm = viewmodel.New()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{vm: vm, logger: logger}
}

// Load seeds the view-model from src.
func (s *Service) Load(ctx context.Context, src viewmodel.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.vm.Load(ctx, src); err != nil {
		return err
	}
	s.logger.Info("todos loaded", "count", s.vm.Len())
	return nil
}

// List projects the collection through f, or the active filter when f is empty.
func (s *Service) List(f model.Filter) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f == "" {
		f = s.vm.Filter()
	}
	return Snapshot{
		Filter:    f,
		Todos:     s.vm.VisibleTodosFor(f),
		Remaining: s.vm.RemainingCount(),
		Total:     s.vm.Len(),
	}
}

// Snapshot returns the whole collection tagged with the active filter.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Filter:    s.vm.Filter(),
		Todos:     s.vm.Todos(),
		Remaining: s.vm.RemainingCount(),
		Total:     s.vm.Len(),
	}
}

// Add prepends a new todo.
func (s *Service) Add(title string) model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.vm.Add(title)
	s.logger.Debug("add todo", "id", t.ID)
	return t
}

// Rename runs a whole edit session on id in one step.
func (s *Service) Rename(id int, title string) Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.vm.BeginEdit(id)
	if ok {
		s.vm.SetEditText(title)
		s.vm.CommitEdit()
	}
	return s.change(id, ok)
}

// Toggle flips the completed flag of id.
func (s *Service) Toggle(id int) Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.change(id, s.vm.Toggle(id))
}

// Remove deletes id.
func (s *Service) Remove(id int) Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.change(id, s.vm.Remove(id))
}

// ClearCompleted drops completed todos and returns how many went.
func (s *Service) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.vm.ClearCompleted()
	s.logger.Debug("cleared completed", "count", n)
	return n
}

// SetFilter changes the filter used when List is called without one.
func (s *Service) SetFilter(f model.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vm.SetFilter(f)
}

// Remaining counts open todos.
func (s *Service) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vm.RemainingCount()
}

func (s *Service) change(id int, matched bool) Change {
	if !matched {
		s.logger.Debug("no todo with id", "id", id)
	}
	return Change{ID: id, Matched: matched, Remaining: s.vm.RemainingCount()}
}
