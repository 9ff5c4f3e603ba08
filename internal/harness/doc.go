// Package harness stands in for the host when a step is previewed or
// validated locally. It provides the field builders and the validate helper
// the host would normally pass to a step, plus a resolver for references.
package harness
