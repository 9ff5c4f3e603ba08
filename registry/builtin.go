package registry

import (
	"fmt"

	"github.com/BDNK1/stepkit/steps/helloworld"
)

// Default returns a registry holding every built-in step.
func Default() (*Registry, error) {
	r := New()

	err := Register[helloworld.Inputs](r, Manifest{
		ID:          helloworld.ID,
		Name:        helloworld.Name,
		Description: helloworld.Description,
		Version:     helloworld.Version,
		Category:    helloworld.Category,
	}, helloworld.UI, helloworld.ValidateInputs)
	if err != nil {
		return nil, fmt.Errorf("failed to register built-in steps: %w", err)
	}

	return r, nil
}
