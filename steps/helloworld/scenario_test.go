package helloworld_test

import (
	"testing"

	"github.com/BDNK1/stepkit/internal/harness"
	"github.com/BDNK1/stepkit/stepapi"
	"github.com/BDNK1/stepkit/steps/helloworld"
)

func TestScenario_InitialInputsFailValidation(t *testing.T) {
	validate := harness.NewValidate(harness.NewResolver(nil), nil)

	inputs := helloworld.UI.CreateInitialInputs()
	results := helloworld.ValidateInputs(inputs, validate)

	msgs := stepapi.Messages(results)
	if len(results) != 1 || len(msgs) != 1 || msgs[0] != "Name can not be empty" {
		t.Errorf("Expected one 'Name can not be empty' failure, got %+v", results)
	}
}

func TestScenario_EditedNamePassesValidation(t *testing.T) {
	validate := harness.NewValidate(harness.NewResolver(nil), nil)

	for _, name := range []string{"Alice", " "} {
		inputs := helloworld.UI.CreateInitialInputs()
		inputs.Name = stepapi.Literal(name)

		fields := helloworld.UI.EditInputsForm(inputs, harness.FieldBuilders())
		if len(fields) != 1 || fields[0].Value != name {
			t.Errorf("Expected one field bound to %q, got %+v", name, fields)
		}

		results := helloworld.ValidateInputs(inputs, validate)
		if len(results) != 1 || !stepapi.Valid(results) {
			t.Errorf("Expected one passing result for %q, got %+v", name, results)
		}
	}
}

func TestScenario_ReferenceResolvedByHost(t *testing.T) {
	resolver := harness.NewResolver(map[string]any{
		"Octopus.Deployer.Name": "",
		"Project":               map[string]any{"Owner": "Bob"},
	})
	validate := harness.NewValidate(resolver, nil)

	tests := []struct {
		path      string
		wantValid bool
		wantMsg   string
	}{
		{"Octopus.Deployer.Name", false, "Name can not be empty"},
		{"Project.Owner", true, ""},
		{"Missing.Variable", false, `Could not resolve reference "Missing.Variable"`},
		{"Missing?.Owner", false, `Could not resolve reference "Missing?.Owner"`},
		{"upper(Project.Owner)", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			inputs := helloworld.Inputs{Name: stepapi.Reference[string](tt.path)}
			results := helloworld.ValidateInputs(inputs, validate)

			if len(results) != 1 {
				t.Fatalf("Expected 1 result, got %d", len(results))
			}
			if results[0].Valid != tt.wantValid || results[0].Message != tt.wantMsg {
				t.Errorf("Expected valid=%v message=%q, got %+v", tt.wantValid, tt.wantMsg, results[0])
			}
		})
	}
}
