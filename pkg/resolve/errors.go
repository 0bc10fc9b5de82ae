package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atsam3x/sam3hal/pkg/chip"
)

var (
	// ErrRuntimeUnsupported is returned when the runtime shim is requested
	// for a part whose PAC has no runtime entry point.
	ErrRuntimeUnsupported = errors.New("runtime unsupported")

	// ErrConflictingVariants is returned when more than one PAC would be
	// activated in the same build.
	ErrConflictingVariants = errors.New("conflicting variants")

	// ErrNoSelection is returned when a build names no variant at all.
	ErrNoSelection = errors.New("no variant selected")
)

// RuntimeUnsupportedError reports a runtime request the PAC cannot honour.
type RuntimeUnsupportedError struct {
	Variant string
	PAC     string
}

func (e *RuntimeUnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s (package %s has no runtime entry point)", ErrRuntimeUnsupported, e.Variant, e.PAC)
}

// Unwrap returns ErrRuntimeUnsupported.
func (e *RuntimeUnsupportedError) Unwrap() error { return ErrRuntimeUnsupported }

// ConflictingVariantsError reports the selections that cannot share a build.
type ConflictingVariantsError struct {
	Selections []Selection
}

func (e *ConflictingVariantsError) Error() string {
	parts := make([]string, len(e.Selections))
	for i, s := range e.Selections {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s: %s (one peripheral-access package per build)", ErrConflictingVariants, strings.Join(parts, " vs "))
}

// Unwrap returns ErrConflictingVariants.
func (e *ConflictingVariantsError) Unwrap() error { return ErrConflictingVariants }

// Kind returns the error kind name used in logs and CLI output. Errors
// from other packages can name their own kind with a Kind() string method.
func Kind(err error) string {
	var kinded interface{ Kind() string }
	switch {
	case err == nil:
		return ""
	case errors.As(err, &kinded):
		return kinded.Kind()
	case errors.Is(err, chip.ErrUnknownVariant):
		return "UnknownVariant"
	case errors.Is(err, ErrRuntimeUnsupported):
		return "RuntimeUnsupported"
	case errors.Is(err, ErrConflictingVariants):
		return "ConflictingVariants"
	case errors.Is(err, ErrNoSelection):
		return "NoSelection"
	default:
		return "Error"
	}
}
