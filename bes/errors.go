package bes

import (
	"errors"
	"fmt"
)

// Sentinel errors describing why a system cannot be solved.
// They are wrapped in a *ConfigurationError; test them with errors.Is.
var (
	ErrOpenSystem      = errors.New("unbound variable")
	ErrDuplicateBinder = errors.New("variable bound more than once")
	ErrEmptySystem     = errors.New("system has no equation")
)

// A ConfigurationError reports a system that violates the preconditions of the solvers.
// It is raised before any solving starts.
type ConfigurationError struct {
	Err      error    // One of the sentinel errors above
	Var      Variable // The offending variable, if any
	Equation int      // Index of the equation where the problem was found, -1 for the initial variable
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Var == "":
		return fmt.Sprintf("invalid system: %v", e.Err)
	case e.Equation < 0:
		return fmt.Sprintf("invalid system: initial variable %s: %v", e.Var, e.Err)
	default:
		return fmt.Sprintf("invalid system: variable %s in equation %d: %v", e.Var, e.Equation, e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
