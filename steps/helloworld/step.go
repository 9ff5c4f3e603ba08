// Package helloworld is an example step that greets a person by name.
package helloworld

const (
	ID          = "hello-world"
	Name        = "Hello World"
	Description = "Greets a person by name."
	Version     = "1.0.0"
	Category    = "Examples"
)
