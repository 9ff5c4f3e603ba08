package harness

import (
	"fmt"
	"log/slog"

	"github.com/BDNK1/stepkit/stepapi"
)

// ReferenceResolver turns a reference path into a plain value.
type ReferenceResolver interface {
	Resolve(path string) (any, error)
}

// NewValidate returns the validate helper handed to a step's ValidateInputs.
// Literals are checked as they are. References are resolved first; a
// reference that cannot be resolved fails without running the check.
func NewValidate(resolver ReferenceResolver, logger *slog.Logger) stepapi.Validate {
	if logger == nil {
		logger = slog.Default()
	}

	return func(input stepapi.Binding, check stepapi.Predicate) stepapi.ValidationResult {
		value, err := resolveInput(resolver, input.Input)
		if err != nil {
			logger.Debug("Validation: reference not resolved",
				"input", input.Key,
				"path", input.Input.Path(),
				"error", err)
			return stepapi.Failed(input.Key, fmt.Sprintf("Could not resolve reference %q", input.Input.Path()))
		}

		if err := check(value); err != nil {
			logger.Debug("Validation failed",
				"input", input.Key,
				"message", err.Error())
			return stepapi.Failed(input.Key, err.Error())
		}

		return stepapi.Passed(input.Key)
	}
}

func resolveInput(resolver ReferenceResolver, input stepapi.Input) (any, error) {
	if input == nil {
		return nil, nil
	}
	if !input.IsReference() {
		return input.LiteralValue(), nil
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: %s: no resolver", ErrUnresolved, input.Path())
	}
	return resolver.Resolve(input.Path())
}
