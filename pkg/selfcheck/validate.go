package selfcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atsam3x/sam3hal/pkg/chip"
)

// ErrTableInvalid is returned by Check when a table has error violations.
var ErrTableInvalid = errors.New("variant table failed self-check")

// Result contains the outcome of validating a table.
type Result struct {
	// Valid is true if no violation has error severity.
	Valid bool

	// Errors contains violations with error severity.
	Errors []Violation

	// Warnings contains violations with warning severity.
	Warnings []Violation

	// Infos contains informational notes.
	Infos []Violation
}

// Validate runs the registry against a table and sorts violations by
// severity.
func Validate(t *chip.Table, registry *RuleRegistry) *Result {
	result := &Result{Valid: true}
	for _, v := range registry.RunRules(t) {
		switch v.Severity {
		case SeverityError:
			result.Errors = append(result.Errors, v)
			result.Valid = false
		case SeverityWarning:
			result.Warnings = append(result.Warnings, v)
		default:
			result.Infos = append(result.Infos, v)
		}
	}
	return result
}

// Err returns nil for a valid result, otherwise an error wrapping
// ErrTableInvalid that lists every error violation.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, v := range r.Errors {
		msgs[i] = v.String()
	}
	return fmt.Errorf("%w:\n  %s", ErrTableInvalid, strings.Join(msgs, "\n  "))
}

// Check validates a table and returns Result.Err.
func Check(t *chip.Table, registry *RuleRegistry) error {
	return Validate(t, registry).Err()
}
