package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "solver.workers")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidStrategies returns the list of valid solving strategies
func ValidStrategies() []string {
	return []string{"spm", "gauss"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log encodings
func ValidLogFormats() []string {
	return []string{"console", "json"}
}

// ValidOutputFormats returns the list of valid report formats
func ValidOutputFormats() []string {
	return []string{"text", "yaml"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidStrategies(), c.Solver.Strategy) {
		errors = append(errors, ValidationError{
			Field:   "solver.strategy",
			Value:   c.Solver.Strategy,
			Message: "must be one of " + strings.Join(ValidStrategies(), ", "),
		})
	}
	if c.Solver.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "solver.workers",
			Value:   c.Solver.Workers,
			Message: "must be non-negative (0 = GOMAXPROCS)",
		})
	}
	if c.Solver.MaxSweeps < 0 {
		errors = append(errors, ValidationError{
			Field:   "solver.max_sweeps",
			Value:   c.Solver.MaxSweeps,
			Message: "must be non-negative (0 = no limit)",
		})
	}
	if c.Solver.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "solver.timeout",
			Value:   c.Solver.Timeout,
			Message: "must be non-negative (0 = no timeout)",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: "must be one of " + strings.Join(ValidLogLevels(), ", "),
		})
	}
	if !slices.Contains(ValidLogFormats(), c.Log.Format) {
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: "must be one of " + strings.Join(ValidLogFormats(), ", "),
		})
	}

	if !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: "must be one of " + strings.Join(ValidOutputFormats(), ", "),
		})
	}

	return errors
}
