package stepapi

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ValidationResult is the outcome of checking one input.
type ValidationResult struct {
	Input   string `json:"input" yaml:"input"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Passed returns a successful result for the input bound under key.
func Passed(key string) ValidationResult {
	return ValidationResult{Input: key, Valid: true}
}

// Failed returns a failed result for the input bound under key.
func Failed(key, message string) ValidationResult {
	return ValidationResult{Input: key, Valid: false, Message: message}
}

// Predicate checks a resolved input value. A nil error means the value is
// acceptable.
type Predicate func(resolved any) error

// Validate is the helper the host passes to ValidateInputs. It resolves the
// bound input and runs check against the plain value.
type Validate func(input Binding, check Predicate) ValidationResult

// ValidationFailure is returned by predicates to reject a value. Message is
// shown to the user as is.
type ValidationFailure struct {
	Message string
}

func (f *ValidationFailure) Error() string {
	return f.Message
}

// Fail returns a *ValidationFailure carrying message.
func Fail(message string) error {
	return &ValidationFailure{Message: message}
}

// Check runs a typed predicate through validate. The resolved value is
// converted to T with weak typing, so a number resolved for a string input
// is seen as its decimal text. A value that cannot be converted fails the
// check.
func Check[T any](validate Validate, input Binding, check func(T) error) ValidationResult {
	return validate(input, func(resolved any) error {
		value, err := decodeValue[T](resolved)
		if err != nil {
			return Fail(fmt.Sprintf("Value must be a %T", value))
		}
		return check(value)
	})
}

func decodeValue[T any](resolved any) (T, error) {
	if v, ok := resolved.(T); ok {
		return v, nil
	}

	var value T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &value,
		TagName: "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return value, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(resolved); err != nil {
		return value, fmt.Errorf("failed to decode %T into %T: %w", resolved, value, err)
	}
	return value, nil
}

// Valid reports whether every result passed.
func Valid(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Messages returns the messages of failed results in order.
func Messages(results []ValidationResult) []string {
	var messages []string
	for _, r := range results {
		if !r.Valid {
			messages = append(messages, r.Message)
		}
	}
	return messages
}
