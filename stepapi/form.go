package stepapi

// FieldType identifies the control a FormField is rendered with.
type FieldType string

const (
	FieldTypeText FieldType = "text"
)

// FormField describes one editable control bound to one input.
// Plugins never construct it directly; they call a FieldBuilders function.
type FormField struct {
	Type     FieldType `json:"type" yaml:"type"`
	Input    string    `json:"input" yaml:"input"`
	Label    string    `json:"label" yaml:"label"`
	HelpText string    `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Value    any       `json:"value" yaml:"value"`
}

// TextField holds the options of a single-line text control.
type TextField struct {
	Input    Binding
	Label    string
	HelpText string
}

// FieldBuilders is the set of field constructors the host passes to
// EditInputsForm.
type FieldBuilders struct {
	Text func(TextField) FormField
}
