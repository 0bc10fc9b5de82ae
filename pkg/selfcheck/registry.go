package selfcheck

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/atsam3x/sam3hal/pkg/chip"
)

// RuleRegistry holds the rules applied to a table, with per-rule enable
// flags and severity overrides. Rules run in registration order.
type RuleRegistry struct {
	mu       sync.RWMutex
	order    []string
	rules    map[string]Rule
	disabled map[string]bool
	severity map[string]Severity
}

// NewRuleRegistry creates an empty registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules:    make(map[string]Rule),
		disabled: make(map[string]bool),
		severity: make(map[string]Severity),
	}
}

// Register adds a rule, enabled at its default severity. Registering an ID
// twice replaces the rule but keeps its position.
func (r *RuleRegistry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.order = append(r.order, id)
	}
	r.rules[id] = rule
	delete(r.disabled, id)
	delete(r.severity, id)
}

// Rule returns a rule by ID, or nil if not registered.
func (r *RuleRegistry) Rule(id string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[id]
}

// SetEnabled enables or disables a rule.
func (r *RuleRegistry) SetEnabled(id string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if enabled {
		delete(r.disabled, id)
	} else {
		r.disabled[id] = true
	}
}

// SetCategoryEnabled enables or disables every rule of a category.
func (r *RuleRegistry) SetCategoryEnabled(category string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rule := range r.rules {
		if rule.Category() != category {
			continue
		}
		if enabled {
			delete(r.disabled, id)
		} else {
			r.disabled[id] = true
		}
	}
}

// IsEnabled reports whether a registered rule is enabled.
func (r *RuleRegistry) IsEnabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[id]
	return ok && !r.disabled[id]
}

// SetSeverity overrides the severity reported for a rule.
func (r *RuleRegistry) SetSeverity(id string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.severity[id] = severity
}

// Severity returns the effective severity of a rule.
func (r *RuleRegistry) Severity(id string) Severity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.severityLocked(id)
}

func (r *RuleRegistry) severityLocked(id string) Severity {
	if sev, ok := r.severity[id]; ok {
		return sev
	}
	if rule, ok := r.rules[id]; ok {
		return rule.DefaultSeverity()
	}
	return SeverityError
}

// Apply applies overrides of the form "RULE-ID=off|error|warning|info".
func (r *RuleRegistry) Apply(overrides ...string) error {
	for _, o := range overrides {
		id, setting, ok := strings.Cut(o, "=")
		if !ok {
			return fmt.Errorf("rule override %q: expected ID=setting", o)
		}
		if r.Rule(id) == nil {
			return fmt.Errorf("rule override %q: unknown rule %s", o, id)
		}
		switch setting {
		case "off":
			r.SetEnabled(id, false)
		case "on":
			r.SetEnabled(id, true)
		case "error":
			r.SetSeverity(id, SeverityError)
		case "warning":
			r.SetSeverity(id, SeverityWarning)
		case "info":
			r.SetSeverity(id, SeverityInfo)
		default:
			return fmt.Errorf("rule override %q: unknown setting %q", o, setting)
		}
	}
	return nil
}

// Rules returns all registered rules in registration order.
func (r *RuleRegistry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := make([]Rule, len(r.order))
	for i, id := range r.order {
		rules[i] = r.rules[id]
	}
	return rules
}

// Categories returns the sorted set of rule categories.
func (r *RuleRegistry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var cats []string
	for _, rule := range r.rules {
		if _, ok := seen[rule.Category()]; !ok {
			seen[rule.Category()] = struct{}{}
			cats = append(cats, rule.Category())
		}
	}
	sort.Strings(cats)
	return cats
}

// RunRules runs every enabled rule against the table. Violations carry the
// registry's effective severity.
func (r *RuleRegistry) RunRules(t *chip.Table) []Violation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var violations []Violation
	for _, id := range r.order {
		if r.disabled[id] {
			continue
		}
		for _, v := range r.rules[id].Check(t) {
			v.Severity = r.severityLocked(v.RuleID)
			violations = append(violations, v)
		}
	}
	return violations
}

// Count returns the number of registered rules.
func (r *RuleRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
