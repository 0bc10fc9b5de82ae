// Package rules contains the variant table self-check rules.
package rules

import "github.com/atsam3x/sam3hal/pkg/selfcheck"

// RegisterAllRules registers all self-check rules with the given registry.
func RegisterAllRules(registry *selfcheck.RuleRegistry) {
	RegisterGenerationRules(registry)
	RegisterPackageRules(registry)
	RegisterRuntimeRules(registry)
	RegisterPACRules(registry)
	RegisterIdentityRules(registry)
}

// NewDefaultRegistry creates a new registry with all rules registered.
func NewDefaultRegistry() *selfcheck.RuleRegistry {
	registry := selfcheck.NewRuleRegistry()
	RegisterAllRules(registry)
	return registry
}
