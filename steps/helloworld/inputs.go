package helloworld

import "github.com/BDNK1/stepkit/stepapi"

// Inputs are the inputs of the hello-world step.
type Inputs struct {
	Name stepapi.ConvertibleInput[string] `json:"name" yaml:"name"`
}
