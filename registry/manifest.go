package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Manifest describes a step to the host.
type Manifest struct {
	ID          string `json:"id" yaml:"id" validate:"required,step_id"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version" default:"0.1.0" validate:"required,semver"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty" default:"Other"`
}

var stepIDRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var manifestValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// step_id: lowercase kebab-case, e.g. "hello-world"
	v.RegisterValidation("step_id", func(fl validator.FieldLevel) bool {
		return stepIDRe.MatchString(fl.Field().String())
	})
	return v
}

// prepareManifest applies defaults and validates m.
func prepareManifest(m *Manifest) error {
	if err := defaults.Set(m); err != nil {
		return fmt.Errorf("failed to apply manifest defaults: %w", err)
	}

	if err := manifestValidator.Struct(m); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMessages []string
			for _, fieldErr := range validationErrors {
				errMessages = append(errMessages, fmt.Sprintf(
					"field '%s' failed validation (rule: %s, value: %q)",
					fieldErr.Field(),
					fieldErr.Tag(),
					fieldErr.Value(),
				))
			}
			return fmt.Errorf("%w:\n  - %s", ErrInvalidManifest, strings.Join(errMessages, "\n  - "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return nil
}
