package chip

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownVariant is returned when a part number is not in the table.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInvalidTable is returned when a table cannot be constructed.
	ErrInvalidTable = errors.New("invalid variant table")
)

// UnknownVariantError reports a lookup of a part number absent from a table.
type UnknownVariantError struct {
	// ID is the identifier that was looked up.
	ID string
	// Suggestion is a known identifier differing only in case, if any.
	Suggestion string
}

func (e *UnknownVariantError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrUnknownVariant, e.ID)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (identifiers are case-sensitive; did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap returns ErrUnknownVariant.
func (e *UnknownVariantError) Unwrap() error { return ErrUnknownVariant }

func unknownVariant(t *Table, id string) error {
	e := &UnknownVariantError{ID: id}
	for _, v := range t.variants {
		if strings.EqualFold(v.ID, id) {
			e.Suggestion = v.ID
			break
		}
	}
	return e
}
