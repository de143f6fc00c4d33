// Package schema checks that a decoded todo payload has the wire shape
// both stores expect: an array of {id int, title string, completed bool}.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/todos/internal/model"
)

const schemaURL = "https://makepad.fr/schemas/todos.schema.json"

const todosSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": {"type": "integer"},
      "title": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(todosSchema)); err != nil {
		panic(fmt.Sprintf("add todos schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

// ShapeError reports the first place the payload departs from the schema.
type ShapeError struct {
	Path    string
	Message string
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unexpected todo payload at %s: %s", e.Path, e.Message)
	}
	return "unexpected todo payload: " + e.Message
}

// Decode validates raw JSON and decodes it into todos.
func Decode(data []byte) ([]model.Todo, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ShapeError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, toShapeError(err)
	}
	var todos []model.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, &ShapeError{Message: err.Error()}
	}
	return todos, nil
}

func toShapeError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ShapeError{Message: err.Error()}
	}
	leaf := firstLeaf(ve)
	return &ShapeError{Path: pointerToPath(leaf.InstanceLocation), Message: leaf.Message}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath turns "/1/title" into "[1].title".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
