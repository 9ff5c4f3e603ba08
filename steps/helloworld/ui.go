package helloworld

import "github.com/BDNK1/stepkit/stepapi"

// StepUI is the form definition of the hello-world step.
type StepUI struct{}

var _ stepapi.StepUI[Inputs] = StepUI{}

// UI is the value the step registers with the host.
var UI = StepUI{}

func (StepUI) CreateInitialInputs() Inputs {
	return Inputs{
		Name: stepapi.Literal(""),
	}
}

func (StepUI) EditInputsForm(inputs Inputs, fields stepapi.FieldBuilders) []stepapi.FormField {
	return []stepapi.FormField{
		fields.Text(stepapi.TextField{
			Input:    stepapi.Bind("name", inputs.Name),
			Label:    "Greeting Name",
			HelpText: "The name of the person to greet.",
		}),
	}
}
