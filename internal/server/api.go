package server

import (
	"github.com/BDNK1/stepkit/stepapi"
)

// FormRequest is the body of POST /steps/:id/form.
type FormRequest struct {
	Inputs map[string]any `json:"inputs" yaml:"inputs"`
}

type FormResponse struct {
	Fields []stepapi.FormField `json:"fields" yaml:"fields"`
}

// ValidateRequest is the body of POST /steps/:id/validate. Variables
// override the server's configured variables for this request only.
type ValidateRequest struct {
	Inputs    map[string]any `json:"inputs" yaml:"inputs"`
	Variables map[string]any `json:"variables,omitempty" yaml:"variables,omitempty"`
}

type ValidateResponse struct {
	Valid   bool                       `json:"valid" yaml:"valid"`
	Results []stepapi.ValidationResult `json:"results" yaml:"results"`
}

type InputsResponse struct {
	Inputs map[string]any `json:"inputs" yaml:"inputs"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Message   string `json:"message" yaml:"message"`
	RequestID string `json:"requestId,omitempty" yaml:"requestId,omitempty"`
}
