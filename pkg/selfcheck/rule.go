package selfcheck

import (
	"fmt"
	"strings"

	"github.com/atsam3x/sam3hal/pkg/chip"
)

// Severity represents the severity level of a check violation.
type Severity int

const (
	// SeverityError indicates the table must not be used.
	SeverityError Severity = iota
	// SeverityWarning indicates a suspicious but usable entry.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Rule is a check applied to a variant table.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "GEN-001").
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Category returns the rule category (e.g., "generation", "package").
	Category() string
	// DefaultSeverity returns the default severity level.
	DefaultSeverity() Severity
	// Check applies the rule to a table and returns any violations.
	Check(t *chip.Table) []Violation
}

// Violation represents a single rule violation.
type Violation struct {
	// RuleID is the ID of the rule that was violated.
	RuleID string
	// Severity is the severity level of this violation.
	Severity Severity
	// Message describes what went wrong.
	Message string
	// Variants lists the part identifiers involved.
	Variants []string
	// Suggestion provides a suggested fix (if applicable).
	Suggestion string
}

// String returns a formatted string representation of the violation.
func (v Violation) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s: %s", v.RuleID, v.Severity, v.Message))

	if len(v.Variants) > 0 {
		sb.WriteString(fmt.Sprintf(" (variants: %s)", strings.Join(v.Variants, ", ")))
	}

	if v.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(" -> %s", v.Suggestion))
	}

	return sb.String()
}

// HasErrors returns true if any violation has severity Error.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FilterBySeverity returns violations at or above the given severity level.
func FilterBySeverity(violations []Violation, minSeverity Severity) []Violation {
	var filtered []Violation
	for _, v := range violations {
		if v.Severity <= minSeverity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// BaseRule provides a default implementation of common Rule methods.
type BaseRule struct {
	id              string
	name            string
	category        string
	defaultSeverity Severity
}

// ID returns the rule ID.
func (r *BaseRule) ID() string { return r.id }

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.name }

// Category returns the rule category.
func (r *BaseRule) Category() string { return r.category }

// DefaultSeverity returns the default severity.
func (r *BaseRule) DefaultSeverity() Severity { return r.defaultSeverity }

// NewBaseRule creates a new BaseRule with the given properties.
func NewBaseRule(id, name, category string, severity Severity) *BaseRule {
	return &BaseRule{
		id:              id,
		name:            name,
		category:        category,
		defaultSeverity: severity,
	}
}

// Violation returns a violation of this rule at its default severity.
func (r *BaseRule) Violation(message string, variants ...string) Violation {
	return Violation{
		RuleID:   r.id,
		Severity: r.defaultSeverity,
		Message:  message,
		Variants: variants,
	}
}
