package board

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPanicStrategy is returned when a freestanding profile has no
	// panic strategy.
	ErrNoPanicStrategy = errors.New("no panic strategy")

	// ErrUnknownBoard is returned by Lookup for unregistered names.
	ErrUnknownBoard = errors.New("unknown board")

	// ErrInvalidProfile is returned for malformed profiles.
	ErrInvalidProfile = errors.New("invalid board profile")

	// ErrMissingModule is returned when the facade lacks a module the
	// profile requires.
	ErrMissingModule = errors.New("missing facade module")
)

// NoPanicStrategyError names the board that cannot link.
type NoPanicStrategyError struct {
	Board string
}

func (e *NoPanicStrategyError) Error() string {
	return fmt.Sprintf("%s: board %s is freestanding and must choose one of halt, abort, reset, semihosting, itm",
		ErrNoPanicStrategy, e.Board)
}

// Unwrap returns ErrNoPanicStrategy.
func (e *NoPanicStrategyError) Unwrap() error { return ErrNoPanicStrategy }

// Kind names the error in resolution logs.
func (e *NoPanicStrategyError) Kind() string { return "NoPanicStrategy" }
