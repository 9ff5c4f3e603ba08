package helloworld

import "github.com/BDNK1/stepkit/stepapi"

var _ stepapi.ValidateInputs[Inputs] = ValidateInputs

// ValidateInputs checks the hello-world inputs.
func ValidateInputs(inputs Inputs, validate stepapi.Validate) []stepapi.ValidationResult {
	return validateName(inputs.Name, validate)
}

// validateName rejects only the exact empty string; whitespace passes.
func validateName(input stepapi.ConvertibleInput[string], validate stepapi.Validate) []stepapi.ValidationResult {
	return []stepapi.ValidationResult{
		stepapi.Check(validate, stepapi.Bind("name", input), func(name string) error {
			if name == "" {
				return stepapi.Fail("Name can not be empty")
			}
			return nil
		}),
	}
}
