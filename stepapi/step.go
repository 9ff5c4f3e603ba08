package stepapi

// StepUI describes how the host creates and edits the inputs of a step.
type StepUI[I any] interface {
	// CreateInitialInputs returns the inputs of a newly added step.
	CreateInitialInputs() I

	// EditInputsForm returns the form fields for inputs, in display order.
	// The host calls it on every refresh with the current values.
	EditInputsForm(inputs I, fields FieldBuilders) []FormField
}

// ValidateInputs checks inputs before the host saves or runs the step.
// It returns one result per checked field.
type ValidateInputs[I any] func(inputs I, validate Validate) []ValidationResult
