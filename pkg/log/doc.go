// Package log provides structured resolution logging for sam3hal.
//
// This package defines the Logger interface and Event types for recording
// what happened during variant resolution: which variant a board selected,
// which capability tags were activated, which selections were rejected and
// why, and which self-check rules fired. It is separate from operational
// logging (slog): the event trace is machine-readable and can be kept next to
// build artifacts.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	r, err := resolve.New(table, resolve.Config{Logger: log.NewSlogAdapter(slog.Default())})
//
//	// For CI: keep a binary trace
//	fl, _ := log.NewFileLogger("build/resolve.rlog")
//
//	// Both
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events (.rlog). The `sam3hal log`
// command prints and filters them.
package log
