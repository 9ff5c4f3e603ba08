package harness

import "github.com/BDNK1/stepkit/stepapi"

// FieldBuilders returns the builders used to describe step forms.
func FieldBuilders() stepapi.FieldBuilders {
	return stepapi.FieldBuilders{
		Text: textField,
	}
}

func textField(f stepapi.TextField) stepapi.FormField {
	return stepapi.FormField{
		Type:     stepapi.FieldTypeText,
		Input:    f.Input.Key,
		Label:    f.Label,
		HelpText: f.HelpText,
		Value:    f.Input.Value(),
	}
}
