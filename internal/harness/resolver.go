package harness

import (
	"errors"
	"fmt"

	"github.com/Jeffail/gabs/v2"
	"github.com/expr-lang/expr"
)

// ErrUnresolved is returned when a reference does not resolve to a value.
var ErrUnresolved = errors.New("unresolved reference")

// Resolver resolves reference paths against a set of variables.
//
// A path is looked up as a flat variable name first ("Octopus.Release.Number")
// and as a path into nested variables second ("Project.Tags.0"). Anything
// else is evaluated as an expr-lang expression in which every variable path
// must name an existing variable.
type Resolver struct {
	variables map[string]any
	doc       *gabs.Container
}

func NewResolver(variables map[string]any) *Resolver {
	if variables == nil {
		variables = map[string]any{}
	}

	return &Resolver{
		variables: variables,
		doc:       gabs.Wrap(variables),
	}
}

func (r *Resolver) Resolve(path string) (any, error) {
	if v, ok := r.lookup(path); ok {
		return v, nil
	}
	return r.evaluate(path)
}

func (r *Resolver) lookup(path string) (any, bool) {
	if v, ok := r.variables[path]; ok {
		return v, true
	}
	if r.doc.ExistsP(path) {
		return r.doc.Path(path).Data(), true
	}
	return nil, false
}

func (r *Resolver) evaluate(expression string) (any, error) {
	rewritten, env, err := r.bindPaths(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, expression, err)
	}

	program, err := expr.Compile(rewritten, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, expression, err)
	}

	value, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnresolved, expression, err)
	}
	return value, nil
}
