// Package registry keeps the steps a host can offer, keyed by step ID.
//
// Steps are registered with their typed StepUI and ValidateInputs. The
// registry wraps them behind an untyped Step so hosts, the HTTP adapter and
// the CLI can work with raw input documents.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/BDNK1/stepkit/stepapi"
)

var (
	ErrStepNotFound    = errors.New("step not found")
	ErrDuplicateStep   = errors.New("step already registered")
	ErrInvalidManifest = errors.New("invalid step manifest")
	ErrInvalidInputs   = errors.New("invalid step inputs")
)

// Step is a registered step with its inputs type erased.
type Step struct {
	Manifest Manifest

	initial  func() (map[string]any, error)
	form     func(raw map[string]any, fields stepapi.FieldBuilders) ([]stepapi.FormField, error)
	validate func(raw map[string]any, validate stepapi.Validate) ([]stepapi.ValidationResult, error)
}

// InitialInputs returns the inputs of a new step as a document.
func (s *Step) InitialInputs() (map[string]any, error) {
	return s.initial()
}

// Form decodes raw and returns the step's form fields for it.
func (s *Step) Form(raw map[string]any, fields stepapi.FieldBuilders) ([]stepapi.FormField, error) {
	return s.form(raw, fields)
}

// Validate decodes raw and returns the step's validation results for it.
func (s *Step) Validate(raw map[string]any, validate stepapi.Validate) ([]stepapi.ValidationResult, error) {
	return s.validate(raw, validate)
}

type Registry struct {
	steps map[string]*Step
}

func New() *Registry {
	return &Registry{
		steps: make(map[string]*Step),
	}
}

// Register adds a step. The manifest gets its defaults applied and is
// validated; a step ID can only be registered once.
func Register[I any](r *Registry, manifest Manifest, ui stepapi.StepUI[I], validate stepapi.ValidateInputs[I]) error {
	if ui == nil {
		return fmt.Errorf("step %q: ui cannot be nil", manifest.ID)
	}
	if validate == nil {
		return fmt.Errorf("step %q: validate cannot be nil", manifest.ID)
	}

	if err := prepareManifest(&manifest); err != nil {
		return fmt.Errorf("step %q: %w", manifest.ID, err)
	}

	if _, exists := r.steps[manifest.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateStep, manifest.ID)
	}

	r.steps[manifest.ID] = &Step{
		Manifest: manifest,
		initial: func() (map[string]any, error) {
			return structToMap(ui.CreateInitialInputs())
		},
		form: func(raw map[string]any, fields stepapi.FieldBuilders) ([]stepapi.FormField, error) {
			inputs, err := decodeInputs(ui, raw)
			if err != nil {
				return nil, err
			}
			return ui.EditInputsForm(inputs, fields), nil
		},
		validate: func(raw map[string]any, v stepapi.Validate) ([]stepapi.ValidationResult, error) {
			inputs, err := decodeInputs(ui, raw)
			if err != nil {
				return nil, err
			}
			return validate(inputs, v), nil
		},
	}

	return nil
}

// Get returns the step registered under id.
func (r *Registry) Get(id string) (*Step, error) {
	step, ok := r.steps[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStepNotFound, id)
	}
	return step, nil
}

// List returns the manifests of all steps sorted by ID.
func (r *Registry) List() []Manifest {
	manifests := make([]Manifest, 0, len(r.steps))
	for _, step := range r.steps {
		manifests = append(manifests, step.Manifest)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].ID < manifests[j].ID
	})
	return manifests
}

// decodeInputs overlays raw onto the step's initial inputs, so keys missing
// from raw keep their initial values and unknown keys are ignored.
func decodeInputs[I any](ui stepapi.StepUI[I], raw map[string]any) (I, error) {
	inputs := ui.CreateInitialInputs()
	if len(raw) == 0 {
		return inputs, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return inputs, fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	if err := json.Unmarshal(data, &inputs); err != nil {
		return inputs, fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}
	return inputs, nil
}

// structToMap converts a struct to map[string]any using JSON round-trip.
// This respects json tags and the inputs' own marshalling.
func structToMap(s any) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inputs: %w", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inputs to map: %w", err)
	}
	return result, nil
}
