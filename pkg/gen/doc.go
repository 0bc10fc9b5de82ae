// Package gen renders Go source files that bind a board to the build tags
// of its activation.
//
// For a set of boards it writes one shared declaration file, one file per
// board gated by that board's tags, and a fallback file gated by the
// negation of all of them. With one board's tags (or none) exactly one gated
// file compiles. Every gated file declares selectedVariant, so tags that
// select two boards at once make the package fail to compile.
package gen
