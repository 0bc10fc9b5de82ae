// Package facade decides which HAL modules a build compiles.
//
// Each module is gated by a Go build-constraint expression over capability
// tokens and part identifiers, the same expression that sits in the
// //go:build line of its source files. Compose evaluates those expressions
// against an activation and returns the resulting module surface. Modules
// never inspect part numbers directly beyond these expressions.
package facade
