package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/store/schema"
)

// File is a read-only todo source backed by a local JSON array.
// Same wire shape as the remote endpoint; handy offline and in demos.
// A missing file is an empty list.
type File struct {
	Path string
}

// Fetch reads and validates the file.
func (f File) Fetch(ctx context.Context) ([]model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Path == "" {
		return nil, fmt.Errorf("seed file path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	todos, err := schema.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return todos, nil
}
