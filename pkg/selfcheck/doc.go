// Package selfcheck validates variant descriptor tables.
//
// A table is checked once, when it is defined (tests for the shipped table,
// load time for YAML overlays, resolver construction for any table). Rules
// are registered in a [RuleRegistry]; the shipped rules live in package
// selfcheck/rules.
//
// # Rule Categories
//
//   - generation: die generation tags (GEN-xxx)
//   - package: pinout class tags and physical pin facts (PKG-xxx, PIN-xxx)
//   - runtime: runtime presence (RT-xxx)
//   - pac: peripheral-access package handles (PAC-xxx)
//   - identity: part identifiers (ID-xxx)
//
// # Usage
//
//	registry := rules.NewDefaultRegistry()
//	result := selfcheck.Validate(chip.Default(), registry)
//	if !result.Valid {
//	    for _, v := range result.Errors {
//	        fmt.Println(v)
//	    }
//	}
package selfcheck
