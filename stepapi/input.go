package stepapi

import (
	"encoding/json"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// referencePattern matches "${ path }". The path may not contain braces and
// may not be blank.
var referencePattern = regexp.MustCompile(`^\$\{\s*([^{}]*[^{}\s])\s*\}$`)

// Input is the untyped view of a ConvertibleInput. Bindings, field builders
// and the validate helper work with this view so they do not need to be
// generic.
type Input interface {
	IsReference() bool
	Path() string
	LiteralValue() any
}

var _ Input = ConvertibleInput[string]{}

// ConvertibleInput holds either a literal value of type T or a reference to
// a variable the host resolves later. The zero value is a literal zero T.
type ConvertibleInput[T any] struct {
	value T
	path  string
	ref   bool
}

// Literal returns an input holding v.
func Literal[T any](v T) ConvertibleInput[T] {
	return ConvertibleInput[T]{value: v}
}

// Reference returns an input pointing at the variable at path.
func Reference[T any](path string) ConvertibleInput[T] {
	return ConvertibleInput[T]{path: path, ref: true}
}

// IsReference reports whether the input is a reference.
func (c ConvertibleInput[T]) IsReference() bool {
	return c.ref
}

// Path returns the reference path, or "" for literals.
func (c ConvertibleInput[T]) Path() string {
	return c.path
}

// Literal returns the literal value and true, or the zero T and false for
// references.
func (c ConvertibleInput[T]) Literal() (T, bool) {
	if c.ref {
		var zero T
		return zero, false
	}
	return c.value, true
}

// LiteralValue returns the literal as any, or nil for references.
func (c ConvertibleInput[T]) LiteralValue() any {
	if c.ref {
		return nil
	}
	return c.value
}

func (c ConvertibleInput[T]) String() string {
	if c.ref {
		return referenceString(c.path)
	}
	return fmt.Sprint(c.value)
}

func (c ConvertibleInput[T]) MarshalJSON() ([]byte, error) {
	if c.ref {
		return json.Marshal(referenceString(c.path))
	}
	return json.Marshal(c.value)
}

func (c *ConvertibleInput[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if path, ok := ParseReference(s); ok {
			*c = Reference[T](path)
			return nil
		}
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid input value: %w", err)
	}
	*c = Literal(v)
	return nil
}

func (c ConvertibleInput[T]) MarshalYAML() (any, error) {
	if c.ref {
		return referenceString(c.path), nil
	}
	return c.value, nil
}

func (c *ConvertibleInput[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		if path, ok := ParseReference(node.Value); ok {
			*c = Reference[T](path)
			return nil
		}
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("invalid input value at line %d: %w", node.Line, err)
	}
	*c = Literal(v)
	return nil
}

// ParseReference extracts the path from a "${ path }" string.
func ParseReference(s string) (string, bool) {
	matches := referencePattern.FindStringSubmatch(s)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}

func referenceString(path string) string {
	return "${ " + path + " }"
}

// Binding pairs an input with its key in the inputs document.
type Binding struct {
	Key   string
	Input Input
}

// Bind binds input to key.
func Bind(key string, input Input) Binding {
	return Binding{Key: key, Input: input}
}

// Value returns what a form control shows for the binding: the literal, or
// the "${ path }" string for references.
func (b Binding) Value() any {
	if b.Input == nil {
		return nil
	}
	if b.Input.IsReference() {
		return referenceString(b.Input.Path())
	}
	return b.Input.LiteralValue()
}
