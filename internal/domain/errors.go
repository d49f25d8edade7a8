package domain

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownToolError is returned when a tool name is not in the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

func IsUnknownTool(err error) bool {
	var target *UnknownToolError
	return errors.As(err, &target)
}

// FieldError is a single violation. Path is dotted with [i] for array
// indexes, e.g. "elements[1].diagramType"; it is empty for the input itself.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string {
	if f.Path == "" {
		return f.Reason
	}
	return f.Path + ": " + f.Reason
}

// InvalidInputError carries every violation found in one input.
type InvalidInputError struct {
	Tool       string
	Violations []FieldError
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("invalid input for %s: %s", e.Tool, strings.Join(parts, "; "))
}

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// NoCallError is returned by history lookups that match nothing.
type NoCallError struct{}

func (e NoCallError) Error() string {
	return "no recorded calls found"
}

func IsNoCallError(err error) bool {
	_, ok := err.(NoCallError)
	return ok
}
