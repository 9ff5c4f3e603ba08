// Package stepapi is the contract between a deployment host and a step plugin.
//
// A step plugin contributes two things to the host:
//  1. A StepUI that creates the initial inputs of a new step and describes
//     the form used to edit them.
//  2. A ValidateInputs function that checks the current inputs before the
//     host lets the user save or run the step.
//
// Plugin authors import only this package. Everything a plugin needs from
// the host (field constructors, the validate helper) is passed in as a
// parameter, so a plugin never reaches for global host state and can be
// tested with fake builders and validators.
//
// # Inputs
//
// Every input field is a ConvertibleInput: either a literal value or a
// reference to a variable that the host resolves later.
//
//	type Inputs struct {
//	    Name stepapi.ConvertibleInput[string] `json:"name" yaml:"name"`
//	}
//
// Literals serialize as the plain value, references as "${ path }":
//
//	name: Alice                          # Literal("Alice")
//	name: ${ Octopus.Deployment.Owner }  # Reference("Octopus.Deployment.Owner")
//
// # Forms
//
// EditInputsForm receives the current inputs and a FieldBuilders value and
// returns the fields in display order. Each field is bound to one input:
//
//	func (StepUI) EditInputsForm(in Inputs, fields stepapi.FieldBuilders) []stepapi.FormField {
//	    return []stepapi.FormField{
//	        fields.Text(stepapi.TextField{
//	            Input:    stepapi.Bind("name", in.Name),
//	            Label:    "Greeting Name",
//	            HelpText: "The name of the person to greet.",
//	        }),
//	    }
//	}
//
// # Validation
//
// ValidateInputs receives the inputs and the host's Validate helper. The
// helper resolves the bound input and hands the plain value to a predicate.
// Check adapts a typed predicate:
//
//	func ValidateInputs(in Inputs, validate stepapi.Validate) []stepapi.ValidationResult {
//	    return []stepapi.ValidationResult{
//	        stepapi.Check(validate, stepapi.Bind("name", in.Name), func(name string) error {
//	            if name == "" {
//	                return stepapi.Fail("Name can not be empty")
//	            }
//	            return nil
//	        }),
//	    }
//	}
//
// A predicate never panics to signal bad input. Failure is reported only
// through the returned results; the host decides how to surface them.
package stepapi
